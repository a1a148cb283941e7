package domain

import "github.com/shopspring/decimal"

// LineType indicates whether a journal line is a Debit or a Credit.
// Amounts are always positive magnitudes; the side carries the sign.
type LineType string

const (
	Debit  LineType = "DEBIT"
	Credit LineType = "CREDIT"
)

// JournalLine is a single line of a journal entry, affecting one account.
// The account arrives nested on reads and is flattened to account_id on
// writes.
type JournalLine struct {
	ID      int64           `json:"id"`
	Account *AccountRef     `json:"account,omitempty"`
	Type    LineType        `json:"type"`
	Amount  decimal.Decimal `json:"amount"`
	Memo    string          `json:"memo"`
}

// Journal is a dated, balanced bookkeeping event composed of two or more
// lines whose debit and credit magnitudes sum to the same total.
type Journal struct {
	ID         int64         `json:"id"`
	PropertyID int64         `json:"property_id"`
	Date       Date          `json:"date"`
	Memo       string        `json:"memo"`
	Lines      []JournalLine `json:"lines"`
	IsDeleted  bool          `json:"is_deleted"`
}

// Key returns the collection cache key.
func (j Journal) Key() int64 { return j.ID }
