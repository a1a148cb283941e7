package dto

import (
	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionPayload is the outgoing body for transaction create and update
// calls. Nested account/entity relations are flattened to _id fields; the
// nested objects themselves never appear in outgoing payloads.
type TransactionPayload struct {
	Date      domain.Date     `json:"date" validate:"required"`
	AccountID int64           `json:"account_id" validate:"required"`
	EntityID  int64           `json:"entity_id,omitempty"`
	Type      domain.LineType `json:"type" validate:"required,oneof=DEBIT CREDIT"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Memo      string          `json:"memo"`
}
