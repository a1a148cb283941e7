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

// TransactionService owns the transaction collection. Its scope key has a
// third input beyond session and property: the relation filter. Filtering
// by account keys the fetch on the active account, filtering by entity on
// the active entity, and any other filter value resolves to "do not fetch":
// the collection stays empty and no request is issued.
type TransactionService struct {
	mu       sync.Mutex
	remote   remote.TransactionRemote
	session  portssvc.SessionReader
	property portssvc.PropertySelector
	accounts portssvc.AccountSelector
	entities portssvc.EntitySelector
	notifier portssvc.Notifier
	logger   *slog.Logger
	filter   domain.TransactionFilter
	scope    domain.TransactionScope
	items    []domain.Transaction
}

var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

// NewTransactionService wires the transaction service to its dependencies.
func NewTransactionService(
	transactionRemote remote.TransactionRemote,
	session portssvc.SessionReader,
	property portssvc.PropertySelector,
	accounts portssvc.AccountSelector,
	entities portssvc.EntitySelector,
	notifier portssvc.Notifier,
	logger *slog.Logger,
) *TransactionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransactionService{
		remote:   transactionRemote,
		session:  session,
		property: property,
		accounts: accounts,
		entities: entities,
		notifier: notifier,
		logger:   logger,
	}
}

// List returns the cached transaction collection.
func (s *TransactionService) List() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Transaction, len(s.items))
	copy(out, s.items)
	return out
}

// Filter returns the current relation filter.
func (s *TransactionService) Filter() domain.TransactionFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetFilter switches the relation filter and recomputes the scope.
func (s *TransactionService) SetFilter(ctx context.Context, f domain.TransactionFilter) {
	s.mu.Lock()
	if s.filter == f {
		s.mu.Unlock()
		return
	}
	s.filter = f
	s.mu.Unlock()
	s.ScopeChanged(ctx)
}

// ScopeChanged recomputes the transaction scope key. Only the relation the
// filter selects participates in the key, so a change to the inactive
// selection does not trigger a refetch.
func (s *TransactionService) ScopeChanged(ctx context.Context) {
	scope := s.currentScope()

	s.mu.Lock()
	if scope == s.scope {
		s.mu.Unlock()
		return
	}
	s.scope = scope
	s.items = nil
	s.mu.Unlock()

	if scope.Fetchable() {
		s.load(ctx, scope)
	}
}

// Add creates a transaction under the active property. Relations on the
// record are flattened to _id fields before transmission.
func (s *TransactionService) Add(ctx context.Context, t domain.Transaction) (*domain.Transaction, error) {
	base := domain.Scope{Authed: s.session.Authenticated(), PropertyID: s.property.ActivePropertyID()}
	if !base.Fetchable() {
		return nil, apperrors.ErrNoScope
	}
	payload := mapping.ToTransactionPayload(t)
	if err := dto.Validate(payload); err != nil {
		return nil, err
	}
	created, err := s.remote.Create(ctx, s.session.Token(), base.PropertyID, payload)
	if err != nil {
		s.notifier.Error("Failed to add transaction")
		return nil, err
	}
	s.cacheCreated(created)
	s.notifier.Success("Transaction added")
	if len(created) == 0 {
		return nil, nil
	}
	first := created[0]
	return &first, nil
}

// AddBulk creates several transactions in one request. Every payload is
// validated before anything is sent, so a bad record fails the whole batch
// inline.
func (s *TransactionService) AddBulk(ctx context.Context, ts []domain.Transaction) ([]domain.Transaction, error) {
	base := domain.Scope{Authed: s.session.Authenticated(), PropertyID: s.property.ActivePropertyID()}
	if !base.Fetchable() {
		return nil, apperrors.ErrNoScope
	}
	payloads := make([]dto.TransactionPayload, 0, len(ts))
	for _, t := range ts {
		payload := mapping.ToTransactionPayload(t)
		if err := dto.Validate(payload); err != nil {
			return nil, err
		}
		payloads = append(payloads, payload)
	}
	created, err := s.remote.CreateBulk(ctx, s.session.Token(), base.PropertyID, payloads)
	if err != nil {
		s.notifier.Error("Failed to add transactions")
		return nil, err
	}
	s.cacheCreated(created)
	s.notifier.Success("Transactions added")
	return created, nil
}

// cacheCreated appends every server-confirmed record. A single create may
// still yield several records when the server expands it.
func (s *TransactionService) cacheCreated(created []domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range created {
		s.items = collection.Append(s.items, c)
	}
}

// Update writes a transaction with the same relation flattening as Add.
func (s *TransactionService) Update(ctx context.Context, t domain.Transaction) (*domain.Transaction, error) {
	if !s.session.Authenticated() {
		return nil, apperrors.ErrUnauthorized
	}
	payload := mapping.ToTransactionPayload(t)
	if err := dto.Validate(payload); err != nil {
		return nil, err
	}
	updated, err := s.remote.Update(ctx, s.session.Token(), t.ID, payload)
	if err != nil {
		s.notifier.Error("Failed to update transaction")
		return nil, err
	}
	s.mu.Lock()
	s.items = collection.Replace(s.items, *updated)
	s.mu.Unlock()
	s.notifier.Success("Transaction updated")
	return updated, nil
}

// Deactivate soft-deletes a transaction after server confirmation.
func (s *TransactionService) Deactivate(ctx context.Context, id int64) error {
	if !s.session.Authenticated() {
		return apperrors.ErrUnauthorized
	}
	if err := s.remote.SoftDelete(ctx, s.session.Token(), id); err != nil {
		s.notifier.Error("Failed to delete transaction")
		return err
	}
	s.mu.Lock()
	s.items = collection.Remove(s.items, id)
	s.mu.Unlock()
	s.notifier.Success("Transaction deleted")
	return nil
}

func (s *TransactionService) currentScope() domain.TransactionScope {
	s.mu.Lock()
	filter := s.filter
	s.mu.Unlock()

	scope := domain.TransactionScope{
		Scope: domain.Scope{
			Authed:     s.session.Authenticated(),
			PropertyID: s.property.ActivePropertyID(),
		},
		Filter: filter,
	}
	switch filter {
	case domain.FilterByAccount:
		scope.AccountID = s.accounts.ActiveAccountID()
	case domain.FilterByEntity:
		scope.EntityID = s.entities.ActiveEntityID()
	}
	return scope
}

func (s *TransactionService) load(ctx context.Context, scope domain.TransactionScope) {
	items, err := s.remote.List(ctx, s.session.Token(), scope)
	if err != nil {
		s.logger.Error("failed to load transactions",
			slog.Int64("property_id", scope.PropertyID),
			slog.String("filter", string(scope.Filter)),
			slog.String("error", err.Error()),
		)
		return
	}
	s.mu.Lock()
	if s.scope == scope {
		s.items = items
	}
	s.mu.Unlock()
}
