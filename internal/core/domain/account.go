package domain

// AccountType classifies an account in the double-entry scheme.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is a bookkeeping account belonging to one property.
type Account struct {
	ID          int64       `json:"id"`
	PropertyID  int64       `json:"property_id"`
	Name        string      `json:"name"`
	Type        AccountType `json:"type"`
	Description string      `json:"description"`
	IsDeleted   bool        `json:"is_deleted"`
}

// Key returns the collection cache key.
func (a Account) Key() int64 { return a.ID }
