package domain

import "github.com/shopspring/decimal"

// Transaction is a single ledger movement against one account, optionally
// tied to an entity. Relations arrive nested on reads; writes flatten them
// to account_id / entity_id fields.
type Transaction struct {
	ID         int64           `json:"id"`
	PropertyID int64           `json:"property_id"`
	Date       Date            `json:"date"`
	Account    *AccountRef     `json:"account,omitempty"`
	Entity     *EntityRef      `json:"entity,omitempty"`
	Type       LineType        `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Memo       string          `json:"memo"`
	IsDeleted  bool            `json:"is_deleted"`
}

// Key returns the collection cache key.
func (t Transaction) Key() int64 { return t.ID }

// TransactionFilter selects which relation the transaction collection is
// filtered by. Anything other than account or entity yields no fetch at all.
type TransactionFilter string

const (
	FilterByAccount TransactionFilter = "account"
	FilterByEntity  TransactionFilter = "entity"
	FilterByNone    TransactionFilter = ""
)
