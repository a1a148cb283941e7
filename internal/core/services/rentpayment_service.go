package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rentbooks/rentbooks/internal/apperrors"
	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/core/ports/remote"
	portssvc "github.com/rentbooks/rentbooks/internal/core/ports/services"
	"github.com/rentbooks/rentbooks/internal/dto"
	"github.com/rentbooks/rentbooks/internal/platform/storage"
	"github.com/rentbooks/rentbooks/internal/utils/collection"
	"github.com/rentbooks/rentbooks/internal/utils/mapping"
)

// RentPaymentService owns the rent payment collection, optionally narrowed
// to one year/month period. The period is part of the scope key, so
// changing it discards and refetches. The selected period is mirrored into
// the session-scoped state store as the active calendar date (the first of
// the month) and restored from there on construction.
type RentPaymentService struct {
	mu           sync.Mutex
	remote       remote.RentPaymentRemote
	session      portssvc.SessionReader
	property     portssvc.PropertySelector
	notifier     portssvc.Notifier
	sessionState storage.Store
	logger       *slog.Logger
	year         int
	month        int
	scope        domain.PaymentScope
	items        []domain.RentPayment
}

var _ portssvc.RentPaymentSvcFacade = (*RentPaymentService)(nil)

// NewRentPaymentService wires the rent payment service to its dependencies.
// sessionState holds session-scoped values; a previously stored active date
// seeds the period filter.
func NewRentPaymentService(paymentRemote remote.RentPaymentRemote, session portssvc.SessionReader, property portssvc.PropertySelector, notifier portssvc.Notifier, sessionState storage.Store, logger *slog.Logger) *RentPaymentService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &RentPaymentService{
		remote:       paymentRemote,
		session:      session,
		property:     property,
		notifier:     notifier,
		sessionState: sessionState,
		logger:       logger,
	}
	if raw, ok := sessionState.Get(storage.KeyActiveDate); ok {
		if d, err := domain.ParseDate(raw); err == nil {
			s.year = d.Year()
			s.month = int(d.Month())
		}
	}
	return s
}

// List returns the cached rent payment collection.
func (s *RentPaymentService) List() []domain.RentPayment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.RentPayment, len(s.items))
	copy(out, s.items)
	return out
}

// SetPeriod narrows the collection to one year/month. Zero values clear
// the period filter. The selection is mirrored into the session state
// store as the active date so a rebuilt engine resumes on the same period.
func (s *RentPaymentService) SetPeriod(ctx context.Context, year, month int) {
	s.mu.Lock()
	if s.year == year && s.month == month {
		s.mu.Unlock()
		return
	}
	s.year = year
	s.month = month
	s.mu.Unlock()

	if year != 0 && month != 0 {
		d := domain.NewDate(year, time.Month(month), 1)
		if err := s.sessionState.Set(storage.KeyActiveDate, d.String()); err != nil {
			s.logger.Warn("failed to store active date", slog.String("error", err.Error()))
		}
	} else if err := s.sessionState.Delete(storage.KeyActiveDate); err != nil {
		s.logger.Warn("failed to clear active date", slog.String("error", err.Error()))
	}
	s.ScopeChanged(ctx)
}

// ScopeChanged recomputes the payment scope key, discards stale cache, and
// refetches under a fetchable scope.
func (s *RentPaymentService) ScopeChanged(ctx context.Context) {
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

// Add records a rent payment under the active property. The tenant entity
// relation is flattened to entity_id before transmission.
func (s *RentPaymentService) Add(ctx context.Context, r domain.RentPayment) (*domain.RentPayment, error) {
	base := domain.Scope{Authed: s.session.Authenticated(), PropertyID: s.property.ActivePropertyID()}
	if !base.Fetchable() {
		return nil, apperrors.ErrNoScope
	}
	payload := mapping.ToRentPaymentPayload(r)
	if err := dto.Validate(payload); err != nil {
		return nil, err
	}
	created, err := s.remote.Create(ctx, s.session.Token(), base.PropertyID, payload)
	if err != nil {
		s.notifier.Error("Failed to add rent payment")
		return nil, err
	}
	s.mu.Lock()
	s.items = collection.Append(s.items, *created)
	s.mu.Unlock()
	s.notifier.Success("Rent payment added")
	return created, nil
}

// Update writes a rent payment and replaces the matching cache entry.
func (s *RentPaymentService) Update(ctx context.Context, r domain.RentPayment) (*domain.RentPayment, error) {
	if !s.session.Authenticated() {
		return nil, apperrors.ErrUnauthorized
	}
	payload := mapping.ToRentPaymentPayload(r)
	if err := dto.Validate(payload); err != nil {
		return nil, err
	}
	updated, err := s.remote.Update(ctx, s.session.Token(), r.ID, payload)
	if err != nil {
		s.notifier.Error("Failed to update rent payment")
		return nil, err
	}
	s.mu.Lock()
	s.items = collection.Replace(s.items, *updated)
	s.mu.Unlock()
	s.notifier.Success("Rent payment updated")
	return updated, nil
}

// Deactivate soft-deletes a rent payment after server confirmation.
func (s *RentPaymentService) Deactivate(ctx context.Context, id int64) error {
	if !s.session.Authenticated() {
		return apperrors.ErrUnauthorized
	}
	if err := s.remote.SoftDelete(ctx, s.session.Token(), id); err != nil {
		s.notifier.Error("Failed to delete rent payment")
		return err
	}
	s.mu.Lock()
	s.items = collection.Remove(s.items, id)
	s.mu.Unlock()
	s.notifier.Success("Rent payment deleted")
	return nil
}

func (s *RentPaymentService) currentScope() domain.PaymentScope {
	s.mu.Lock()
	year, month := s.year, s.month
	s.mu.Unlock()
	return domain.PaymentScope{
		Scope: domain.Scope{
			Authed:     s.session.Authenticated(),
			PropertyID: s.property.ActivePropertyID(),
		},
		Year:  year,
		Month: month,
	}
}

func (s *RentPaymentService) load(ctx context.Context, scope domain.PaymentScope) {
	items, err := s.remote.List(ctx, s.session.Token(), scope)
	if err != nil {
		s.logger.Error("failed to load rent payments",
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
