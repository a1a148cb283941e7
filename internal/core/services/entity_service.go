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

// EntityService owns the tenant/vendor collection for the active property
// and the derived "active entity" selection.
type EntityService struct {
	mu        sync.Mutex
	remote    remote.EntityRemote
	session   portssvc.SessionReader
	property  portssvc.PropertySelector
	notifier  portssvc.Notifier
	logger    *slog.Logger
	scope     domain.Scope
	items     []domain.Entity
	activeID  int64
	listeners []portssvc.ScopeListener
}

var _ portssvc.EntitySvcFacade = (*EntityService)(nil)

// NewEntityService wires the entity service to its dependencies.
func NewEntityService(entityRemote remote.EntityRemote, session portssvc.SessionReader, property portssvc.PropertySelector, notifier portssvc.Notifier, logger *slog.Logger) *EntityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EntityService{
		remote:   entityRemote,
		session:  session,
		property: property,
		notifier: notifier,
		logger:   logger,
	}
}

// RegisterScopeListener adds a listener notified when the active entity
// selection changes.
func (s *EntityService) RegisterScopeListener(l portssvc.ScopeListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// List returns the cached entity collection.
func (s *EntityService) List() []domain.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Entity, len(s.items))
	copy(out, s.items)
	return out
}

// ActiveEntityID returns the selected entity id, or 0.
func (s *EntityService) ActiveEntityID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// SetActiveEntity changes the derived entity selection and cascades to
// listeners.
func (s *EntityService) SetActiveEntity(ctx context.Context, id int64) {
	s.mu.Lock()
	if s.activeID == id {
		s.mu.Unlock()
		return
	}
	s.activeID = id
	s.mu.Unlock()
	s.notifyListeners(ctx)
}

// ScopeChanged recomputes the scope key, discards stale cache, clears the
// derived selection, and refetches under a fetchable scope.
func (s *EntityService) ScopeChanged(ctx context.Context) {
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

// Add creates an entity under the active property.
func (s *EntityService) Add(ctx context.Context, e domain.Entity) (*domain.Entity, error) {
	scope := domain.Scope{Authed: s.session.Authenticated(), PropertyID: s.property.ActivePropertyID()}
	if !scope.Fetchable() {
		return nil, apperrors.ErrNoScope
	}
	payload := mapping.ToEntityPayload(e)
	if err := dto.Validate(payload); err != nil {
		return nil, err
	}
	created, err := s.remote.Create(ctx, s.session.Token(), scope.PropertyID, payload)
	if err != nil {
		s.notifier.Error("Failed to add entity")
		return nil, err
	}
	s.mu.Lock()
	s.items = collection.Append(s.items, *created)
	s.mu.Unlock()
	s.notifier.Success("Entity added")
	return created, nil
}

// Update writes an entity and replaces the matching cache entry.
func (s *EntityService) Update(ctx context.Context, e domain.Entity) (*domain.Entity, error) {
	if !s.session.Authenticated() {
		return nil, apperrors.ErrUnauthorized
	}
	payload := mapping.ToEntityPayload(e)
	if err := dto.Validate(payload); err != nil {
		return nil, err
	}
	updated, err := s.remote.Update(ctx, s.session.Token(), e.ID, payload)
	if err != nil {
		s.notifier.Error("Failed to update entity")
		return nil, err
	}
	s.mu.Lock()
	s.items = collection.Replace(s.items, *updated)
	s.mu.Unlock()
	s.notifier.Success("Entity updated")
	return updated, nil
}

// Deactivate soft-deletes an entity after server confirmation.
func (s *EntityService) Deactivate(ctx context.Context, id int64) error {
	if !s.session.Authenticated() {
		return apperrors.ErrUnauthorized
	}
	if err := s.remote.SoftDelete(ctx, s.session.Token(), id); err != nil {
		s.notifier.Error("Failed to delete entity")
		return err
	}

	s.mu.Lock()
	s.items = collection.Remove(s.items, id)
	wasActive := s.activeID == id
	if wasActive {
		s.activeID = 0
	}
	s.mu.Unlock()

	s.notifier.Success("Entity deleted")
	if wasActive {
		s.notifyListeners(ctx)
	}
	return nil
}

func (s *EntityService) load(ctx context.Context, scope domain.Scope) {
	items, err := s.remote.List(ctx, s.session.Token(), scope.PropertyID)
	if err != nil {
		s.logger.Error("failed to load entities",
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

func (s *EntityService) notifyListeners(ctx context.Context) {
	s.mu.Lock()
	listeners := make([]portssvc.ScopeListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, l := range listeners {
		l.ScopeChanged(ctx)
	}
}
