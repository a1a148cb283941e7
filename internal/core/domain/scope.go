package domain

// Scope is the pair of shared inputs that keys every property-scoped
// collection fetch: whether a usable access token is present, and which
// property is active. Services compare scope values (plain ==) and refetch
// whenever the computed scope changes; an unfetchable scope clears the
// cached collection without fetching.
type Scope struct {
	Authed     bool
	PropertyID int64
}

// Fetchable reports whether the scope resolves to a request at all.
func (s Scope) Fetchable() bool {
	return s.Authed && s.PropertyID != 0
}

// TransactionScope extends Scope with the three-way relation filter.
// FilterByAccount requires an active account, FilterByEntity an active
// entity, and any other filter value suppresses the fetch entirely.
type TransactionScope struct {
	Scope
	Filter    TransactionFilter
	AccountID int64
	EntityID  int64
}

// Fetchable reports whether the transaction scope resolves to a request.
func (s TransactionScope) Fetchable() bool {
	if !s.Scope.Fetchable() {
		return false
	}
	switch s.Filter {
	case FilterByAccount:
		return s.AccountID != 0
	case FilterByEntity:
		return s.EntityID != 0
	default:
		return false
	}
}

// PaymentScope extends Scope with an optional year/month period filter.
// Zero values mean "no period filter"; the scope is fetchable either way.
type PaymentScope struct {
	Scope
	Year  int
	Month int
}
