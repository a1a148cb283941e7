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
	"github.com/rentbooks/rentbooks/internal/utils/accounting"
	"github.com/rentbooks/rentbooks/internal/utils/collection"
	"github.com/rentbooks/rentbooks/internal/utils/mapping"
)

// JournalService owns the journal collection for the active property.
// Writes are gated on the client-side balance check: an unbalanced journal
// never reaches the wire. The backend stays the authority on ledger rules;
// this gate only mirrors it so the user gets an inline error instead of a
// round trip.
type JournalService struct {
	mu       sync.Mutex
	remote   remote.JournalRemote
	session  portssvc.SessionReader
	property portssvc.PropertySelector
	notifier portssvc.Notifier
	logger   *slog.Logger
	scope    domain.Scope
	items    []domain.Journal
}

var _ portssvc.JournalSvcFacade = (*JournalService)(nil)

// NewJournalService wires the journal service to its dependencies.
func NewJournalService(journalRemote remote.JournalRemote, session portssvc.SessionReader, property portssvc.PropertySelector, notifier portssvc.Notifier, logger *slog.Logger) *JournalService {
	if logger == nil {
		logger = slog.Default()
	}
	return &JournalService{
		remote:   journalRemote,
		session:  session,
		property: property,
		notifier: notifier,
		logger:   logger,
	}
}

// List returns the cached journal collection.
func (s *JournalService) List() []domain.Journal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Journal, len(s.items))
	copy(out, s.items)
	return out
}

// ScopeChanged recomputes the scope key, discards stale cache, and
// refetches under a fetchable scope.
func (s *JournalService) ScopeChanged(ctx context.Context) {
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
	s.mu.Unlock()

	if scope.Fetchable() {
		s.load(ctx, scope)
	}
}

// Add validates balance locally, then creates the journal under the active
// property. Validation failures are returned inline: no notification, no
// request.
func (s *JournalService) Add(ctx context.Context, j domain.Journal) (*domain.Journal, error) {
	scope := domain.Scope{Authed: s.session.Authenticated(), PropertyID: s.property.ActivePropertyID()}
	if !scope.Fetchable() {
		return nil, apperrors.ErrNoScope
	}
	if err := accounting.ValidateJournalBalance(j.Lines); err != nil {
		return nil, err
	}
	payload := mapping.ToJournalPayload(j)
	if err := dto.Validate(payload); err != nil {
		return nil, err
	}
	created, err := s.remote.Create(ctx, s.session.Token(), scope.PropertyID, payload)
	if err != nil {
		s.notifier.Error("Failed to add journal entry")
		return nil, err
	}
	s.mu.Lock()
	s.items = collection.Append(s.items, *created)
	s.mu.Unlock()
	s.notifier.Success("Journal entry added")
	return created, nil
}

// Update rewrites a journal, with the same local balance gate as Add.
func (s *JournalService) Update(ctx context.Context, j domain.Journal) (*domain.Journal, error) {
	if !s.session.Authenticated() {
		return nil, apperrors.ErrUnauthorized
	}
	if err := accounting.ValidateJournalBalance(j.Lines); err != nil {
		return nil, err
	}
	payload := mapping.ToJournalPayload(j)
	if err := dto.Validate(payload); err != nil {
		return nil, err
	}
	updated, err := s.remote.Update(ctx, s.session.Token(), j.ID, payload)
	if err != nil {
		s.notifier.Error("Failed to update journal entry")
		return nil, err
	}
	s.mu.Lock()
	s.items = collection.Replace(s.items, *updated)
	s.mu.Unlock()
	s.notifier.Success("Journal entry updated")
	return updated, nil
}

// Deactivate soft-deletes a journal after server confirmation.
func (s *JournalService) Deactivate(ctx context.Context, id int64) error {
	if !s.session.Authenticated() {
		return apperrors.ErrUnauthorized
	}
	if err := s.remote.SoftDelete(ctx, s.session.Token(), id); err != nil {
		s.notifier.Error("Failed to delete journal entry")
		return err
	}
	s.mu.Lock()
	s.items = collection.Remove(s.items, id)
	s.mu.Unlock()
	s.notifier.Success("Journal entry deleted")
	return nil
}

func (s *JournalService) load(ctx context.Context, scope domain.Scope) {
	items, err := s.remote.List(ctx, s.session.Token(), scope.PropertyID)
	if err != nil {
		s.logger.Error("failed to load journals",
			slog.Int64("property_id", scope.PropertyID),
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
