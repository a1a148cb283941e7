// Package services defines the facades the engine's services implement and
// the cross-service dependencies they are wired with. Dependencies are
// explicit constructor parameters, never ambient lookup: a resource service
// reads the session and active property through these interfaces and is
// registered as a ScopeListener with whatever it depends on.
package services

import (
	"context"

	"github.com/rentbooks/rentbooks/internal/core/domain"
)

// Notifier serializes user-facing notifications into a single visible
// toast, strict FIFO, one at a time.
type Notifier interface {
	// Notify appends a notification to the queue tail.
	Notify(n domain.Notification)
	// Success enqueues a success notification with the default duration.
	Success(text string)
	// Error enqueues an error notification with the default duration.
	Error(text string)
	// Hide clears the display slot immediately; the next queued item is
	// promoted without waiting out the hidden item's timer.
	Hide()
	// Current returns the currently displayed notification, if any.
	Current() *domain.Notification
	// Subscribe returns a channel of displayed notifications and a cancel
	// function. It fails with apperrors.ErrNotRunning outside the
	// notifier's running lifecycle.
	Subscribe() (<-chan domain.Notification, func(), error)
}

// ScopeListener is implemented by every service whose collection is keyed
// on session or active-property state. The emitting service calls
// ScopeChanged after its own state settles; the listener recomputes its
// scope key, discards stale cache, and refetches if the new key is
// fetchable.
type ScopeListener interface {
	ScopeChanged(ctx context.Context)
}

// SessionReader exposes the access token to dependent services. Resource
// services only read it; only the session service mutates it.
type SessionReader interface {
	Token() string
	// Authenticated reports whether a usable (present, unexpired) access
	// token is held.
	Authenticated() bool
}

// PropertySelector exposes the active property selection.
type PropertySelector interface {
	ActivePropertyID() int64
}

// AccountSelector exposes the active account selection derived from the
// account collection. Cleared whenever the active property changes.
type AccountSelector interface {
	ActiveAccountID() int64
}

// EntitySelector exposes the active entity selection.
type EntitySelector interface {
	ActiveEntityID() int64
}

// PropertySvcFacade owns the property collection and the active property.
type PropertySvcFacade interface {
	ScopeListener
	PropertySelector
	List() []domain.Property
	SetActiveProperty(ctx context.Context, id int64)
	Add(ctx context.Context, p domain.Property) (*domain.Property, error)
	Update(ctx context.Context, p domain.Property) (*domain.Property, error)
	Deactivate(ctx context.Context, id int64) error
	RegisterScopeListener(l ScopeListener)
}

// AccountSvcFacade owns the account collection for the active property.
// Selection changes cascade to listeners (the transaction collection keys
// its fetch on the active account).
type AccountSvcFacade interface {
	ScopeListener
	AccountSelector
	List() []domain.Account
	SetActiveAccount(ctx context.Context, id int64)
	Add(ctx context.Context, a domain.Account) (*domain.Account, error)
	Update(ctx context.Context, a domain.Account) (*domain.Account, error)
	Deactivate(ctx context.Context, id int64) error
	RegisterScopeListener(l ScopeListener)
}

// EntitySvcFacade owns the entity (tenant/vendor) collection.
type EntitySvcFacade interface {
	ScopeListener
	EntitySelector
	List() []domain.Entity
	SetActiveEntity(ctx context.Context, id int64)
	Add(ctx context.Context, e domain.Entity) (*domain.Entity, error)
	Update(ctx context.Context, e domain.Entity) (*domain.Entity, error)
	Deactivate(ctx context.Context, id int64) error
	RegisterScopeListener(l ScopeListener)
}

// JournalSvcFacade owns the journal collection. Add and Update refuse
// unbalanced journals before any request is sent.
type JournalSvcFacade interface {
	ScopeListener
	List() []domain.Journal
	Add(ctx context.Context, j domain.Journal) (*domain.Journal, error)
	Update(ctx context.Context, j domain.Journal) (*domain.Journal, error)
	Deactivate(ctx context.Context, id int64) error
}

// TransactionSvcFacade owns the transaction collection, filtered by the
// three-way relation filter. AddBulk posts a whole batch in one request;
// both create paths cache every record the server confirms.
type TransactionSvcFacade interface {
	ScopeListener
	List() []domain.Transaction
	SetFilter(ctx context.Context, f domain.TransactionFilter)
	Filter() domain.TransactionFilter
	Add(ctx context.Context, t domain.Transaction) (*domain.Transaction, error)
	AddBulk(ctx context.Context, ts []domain.Transaction) ([]domain.Transaction, error)
	Update(ctx context.Context, t domain.Transaction) (*domain.Transaction, error)
	Deactivate(ctx context.Context, id int64) error
}

// RentPaymentSvcFacade owns the rent payment collection with its optional
// year/month period filter.
type RentPaymentSvcFacade interface {
	ScopeListener
	List() []domain.RentPayment
	SetPeriod(ctx context.Context, year, month int)
	Add(ctx context.Context, r domain.RentPayment) (*domain.RentPayment, error)
	Update(ctx context.Context, r domain.RentPayment) (*domain.RentPayment, error)
	Deactivate(ctx context.Context, id int64) error
}
