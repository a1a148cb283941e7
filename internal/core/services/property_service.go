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

// PropertyService owns the property collection and the active property
// selection. It is scoped only by the session: the property list loads when
// a token appears and is dropped when it goes away. Changing the active
// property notifies every registered listener, which is how all dependent
// collections learn to discard and refetch.
type PropertyService struct {
	mu        sync.Mutex
	remote    remote.PropertyRemote
	session   portssvc.SessionReader
	notifier  portssvc.Notifier
	logger    *slog.Logger
	authed    bool
	items     []domain.Property
	activeID  int64
	listeners []portssvc.ScopeListener
}

var _ portssvc.PropertySvcFacade = (*PropertyService)(nil)

// NewPropertyService wires the property service to its dependencies.
func NewPropertyService(propertyRemote remote.PropertyRemote, session portssvc.SessionReader, notifier portssvc.Notifier, logger *slog.Logger) *PropertyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PropertyService{
		remote:   propertyRemote,
		session:  session,
		notifier: notifier,
		logger:   logger,
	}
}

// RegisterScopeListener adds a listener notified whenever the active
// property or the session scope changes. Registration order is notification
// order.
func (s *PropertyService) RegisterScopeListener(l portssvc.ScopeListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// ActivePropertyID returns the selected property id, or 0 when none is
// selected.
func (s *PropertyService) ActivePropertyID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// List returns the cached property collection.
func (s *PropertyService) List() []domain.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Property, len(s.items))
	copy(out, s.items)
	return out
}

// ScopeChanged reacts to session transitions: the cached collection and the
// active selection are discarded, then reloaded when a token is present.
func (s *PropertyService) ScopeChanged(ctx context.Context) {
	authed := s.session.Authenticated()

	s.mu.Lock()
	if authed == s.authed {
		s.mu.Unlock()
		return
	}
	s.authed = authed
	s.items = nil
	s.activeID = 0
	s.mu.Unlock()

	if authed {
		s.load(ctx)
	}
	s.notifyListeners(ctx)
}

// SetActiveProperty switches the active property and cascades the scope
// change to every dependent collection.
func (s *PropertyService) SetActiveProperty(ctx context.Context, id int64) {
	s.mu.Lock()
	if s.activeID == id {
		s.mu.Unlock()
		return
	}
	s.activeID = id
	s.mu.Unlock()

	s.notifyListeners(ctx)
}

// Add creates a property and appends the server-returned record.
func (s *PropertyService) Add(ctx context.Context, p domain.Property) (*domain.Property, error) {
	if !s.session.Authenticated() {
		return nil, apperrors.ErrUnauthorized
	}
	payload := mapping.ToPropertyPayload(p)
	if err := dto.Validate(payload); err != nil {
		return nil, err
	}
	created, err := s.remote.Create(ctx, s.session.Token(), payload)
	if err != nil {
		s.notifier.Error("Failed to add property")
		return nil, err
	}
	s.mu.Lock()
	s.items = collection.Append(s.items, *created)
	s.mu.Unlock()
	s.notifier.Success("Property added")
	return created, nil
}

// Update writes a property and replaces the matching cache entry in place.
func (s *PropertyService) Update(ctx context.Context, p domain.Property) (*domain.Property, error) {
	if !s.session.Authenticated() {
		return nil, apperrors.ErrUnauthorized
	}
	payload := mapping.ToPropertyPayload(p)
	if err := dto.Validate(payload); err != nil {
		return nil, err
	}
	updated, err := s.remote.Update(ctx, s.session.Token(), p.ID, payload)
	if err != nil {
		s.notifier.Error("Failed to update property")
		return nil, err
	}
	s.mu.Lock()
	s.items = collection.Replace(s.items, *updated)
	s.mu.Unlock()
	s.notifier.Success("Property updated")
	return updated, nil
}

// Deactivate soft-deletes a property. If it was the active one, the
// selection is cleared and dependents are notified.
func (s *PropertyService) Deactivate(ctx context.Context, id int64) error {
	if !s.session.Authenticated() {
		return apperrors.ErrUnauthorized
	}
	if err := s.remote.SoftDelete(ctx, s.session.Token(), id); err != nil {
		s.notifier.Error("Failed to delete property")
		return err
	}

	s.mu.Lock()
	s.items = collection.Remove(s.items, id)
	wasActive := s.activeID == id
	if wasActive {
		s.activeID = 0
	}
	s.mu.Unlock()

	s.notifier.Success("Property deleted")
	if wasActive {
		s.notifyListeners(ctx)
	}
	return nil
}

func (s *PropertyService) load(ctx context.Context) {
	items, err := s.remote.List(ctx, s.session.Token())
	if err != nil {
		// Load failures are logged, not notified; the collection stays
		// empty and the user may retry by switching scope again.
		s.logger.Error("failed to load properties", slog.String("error", err.Error()))
		return
	}
	s.mu.Lock()
	if s.authed {
		s.items = items
	}
	s.mu.Unlock()
}

func (s *PropertyService) notifyListeners(ctx context.Context) {
	s.mu.Lock()
	listeners := make([]portssvc.ScopeListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, l := range listeners {
		l.ScopeChanged(ctx)
	}
}
