package dto

import (
	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLinePayload is one outgoing journal line. The nested account
// relation is flattened to account_id before transmission.
type JournalLinePayload struct {
	AccountID int64           `json:"account_id" validate:"required"`
	Type      domain.LineType `json:"type" validate:"required,oneof=DEBIT CREDIT"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Memo      string          `json:"memo"`
}

// JournalPayload is the outgoing body for journal create and update calls.
type JournalPayload struct {
	Date  domain.Date          `json:"date" validate:"required"`
	Memo  string               `json:"memo"`
	Lines []JournalLinePayload `json:"lines" validate:"required,min=2,dive"`
}
