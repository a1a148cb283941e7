package domain

import "github.com/shopspring/decimal"

// RentPayment records a rent receipt from a tenant entity for one period.
type RentPayment struct {
	ID         int64           `json:"id"`
	PropertyID int64           `json:"property_id"`
	Entity     *EntityRef      `json:"entity,omitempty"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Amount     decimal.Decimal `json:"amount"`
	PaidOn     Date            `json:"paid_on"`
	Memo       string          `json:"memo"`
	IsDeleted  bool            `json:"is_deleted"`
}

// Key returns the collection cache key.
func (r RentPayment) Key() int64 { return r.ID }
