package dto

import (
	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RentPaymentPayload is the outgoing body for rent payment create and update
// calls. The tenant entity relation is flattened to entity_id.
type RentPaymentPayload struct {
	EntityID int64           `json:"entity_id" validate:"required"`
	Year     int             `json:"year" validate:"required,gte=1900,lte=2200"`
	Month    int             `json:"month" validate:"required,gte=1,lte=12"`
	Amount   decimal.Decimal `json:"amount" validate:"required"`
	PaidOn   domain.Date     `json:"paid_on" validate:"required"`
	Memo     string          `json:"memo"`
}
