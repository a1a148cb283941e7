package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rentbooks/rentbooks/internal/apperrors"
	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/core/ports/remote"
	portssvc "github.com/rentbooks/rentbooks/internal/core/ports/services"
	"github.com/rentbooks/rentbooks/internal/dto"
	"github.com/rentbooks/rentbooks/internal/utils/collection"
	"github.com/rentbooks/rentbooks/internal/utils/mapping"
)

// AccountService owns the account collection for the active property and
// the derived "active account" selection. The cache is reconciled without
// refetching: server-confirmed creates are appended, updates replace the
// matching entry in place, soft deletes remove it.
type AccountService struct {
	mu        sync.Mutex
	remote    remote.AccountRemote
	session   portssvc.SessionReader
	property  portssvc.PropertySelector
	notifier  portssvc.Notifier
	logger    *slog.Logger
	scope     domain.Scope
	items     []domain.Account
	activeID  int64
	listeners []portssvc.ScopeListener
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// NewAccountService wires the account service to its dependencies.
func NewAccountService(accountRemote remote.AccountRemote, session portssvc.SessionReader, property portssvc.PropertySelector, notifier portssvc.Notifier, logger *slog.Logger) *AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{
		remote:   accountRemote,
		session:  session,
		property: property,
		notifier: notifier,
		logger:   logger,
	}
}

// RegisterScopeListener adds a listener notified when the active account
// selection changes.
func (s *AccountService) RegisterScopeListener(l portssvc.ScopeListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// List returns the cached account collection.
func (s *AccountService) List() []domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Account, len(s.items))
	copy(out, s.items)
	return out
}

// ActiveAccountID returns the selected account id, or 0.
func (s *AccountService) ActiveAccountID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// SetActiveAccount changes the derived account selection and cascades to
// listeners keying their fetch on it.
func (s *AccountService) SetActiveAccount(ctx context.Context, id int64) {
	s.mu.Lock()
	if s.activeID == id {
		s.mu.Unlock()
		return
	}
	s.activeID = id
	s.mu.Unlock()
	s.notifyListeners(ctx)
}

// ScopeChanged recomputes the scope key from the session and active
// property. When the key changed, the old collection is discarded before
// any fetch, and the derived selection is cleared: it may not belong to the
// new property's data set.
func (s *AccountService) ScopeChanged(ctx context.Context) {
	scope := domain.Scope{
		Authed:     s.session.Authenticated(),
		PropertyID: s.property.ActivePropertyID(),
	}

	s.mu.Lock()
	if scope == s.scope {
		s.mu.Unlock()
		return
	}
	s.scope = scope
	s.items = nil
	selectionCleared := s.activeID != 0
	s.activeID = 0
	s.mu.Unlock()

	if scope.Fetchable() {
		s.load(ctx, scope)
	}
	if selectionCleared {
		s.notifyListeners(ctx)
	}
}

// Add creates an account under the active property. On success the
// server-returned record is appended to the cache; on failure the cache is
// left untouched and the failure is notified.
func (s *AccountService) Add(ctx context.Context, a domain.Account) (*domain.Account, error) {
	scope := s.currentScope()
	if !scope.Fetchable() {
		return nil, apperrors.ErrNoScope
	}
	payload := mapping.ToAccountPayload(a)
	if err := dto.Validate(payload); err != nil {
		return nil, err
	}
	created, err := s.remote.Create(ctx, s.session.Token(), scope.PropertyID, payload)
	if err != nil {
		s.notifier.Error("Failed to add account")
		return nil, err
	}
	s.mu.Lock()
	s.items = collection.Append(s.items, *created)
	s.mu.Unlock()
	s.notifier.Success("Account added")
	return created, nil
}

// Update writes an account and replaces the matching cache entry, leaving
// every other entry untouched in value and position.
func (s *AccountService) Update(ctx context.Context, a domain.Account) (*domain.Account, error) {
	if !s.session.Authenticated() {
		return nil, apperrors.ErrUnauthorized
	}
	payload := mapping.ToAccountPayload(a)
	if err := dto.Validate(payload); err != nil {
		return nil, err
	}
	updated, err := s.remote.Update(ctx, s.session.Token(), a.ID, payload)
	if err != nil {
		s.notifier.Error("Failed to update account")
		return nil, err
	}
	s.mu.Lock()
	s.items = collection.Replace(s.items, *updated)
	s.mu.Unlock()
	s.notifier.Success("Account updated")
	return updated, nil
}

// Deactivate soft-deletes an account; the cache entry is removed only after
// the server confirms the mutation.
func (s *AccountService) Deactivate(ctx context.Context, id int64) error {
	if !s.session.Authenticated() {
		return apperrors.ErrUnauthorized
	}
	if err := s.remote.SoftDelete(ctx, s.session.Token(), id); err != nil {
		s.notifier.Error("Failed to delete account")
		return err
	}

	s.mu.Lock()
	s.items = collection.Remove(s.items, id)
	wasActive := s.activeID == id
	if wasActive {
		s.activeID = 0
	}
	s.mu.Unlock()

	s.notifier.Success("Account deleted")
	if wasActive {
		s.notifyListeners(ctx)
	}
	return nil
}

func (s *AccountService) currentScope() domain.Scope {
	return domain.Scope{
		Authed:     s.session.Authenticated(),
		PropertyID: s.property.ActivePropertyID(),
	}
}

func (s *AccountService) load(ctx context.Context, scope domain.Scope) {
	items, err := s.remote.List(ctx, s.session.Token(), scope.PropertyID)
	if err != nil {
		s.logger.Error("failed to load accounts",
			slog.Int64("property_id", scope.PropertyID),
			slog.String("error", err.Error()),
		)
		return
	}
	s.mu.Lock()
	// A response for a scope that is no longer current is dropped, never
	// merged into the new scope's collection.
	if s.scope == scope {
		s.items = items
	}
	s.mu.Unlock()
}

func (s *AccountService) notifyListeners(ctx context.Context) {
	s.mu.Lock()
	listeners := make([]portssvc.ScopeListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, l := range listeners {
		l.ScopeChanged(ctx)
	}
}
