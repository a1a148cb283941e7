package services_test

import (
	"context"
	"testing"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/core/services"
	"github.com/rentbooks/rentbooks/internal/platform/storage"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RentPaymentServiceTestSuite struct {
	suite.Suite
	mockRemote   *MockRentPaymentRemote
	session      *stubSession
	property     *stubProperty
	notifier     *recordingNotifier
	sessionState *storage.MemStore
	service      *services.RentPaymentService
}

func (s *RentPaymentServiceTestSuite) SetupTest() {
	s.mockRemote = new(MockRentPaymentRemote)
	s.session = &stubSession{token: "tok-1", authed: true}
	s.property = &stubProperty{id: 1}
	s.notifier = &recordingNotifier{}
	s.sessionState = storage.NewMemStore()
	s.service = services.NewRentPaymentService(s.mockRemote, s.session, s.property, s.notifier, s.sessionState, testLogger())
}

func (s *RentPaymentServiceTestSuite) TestSetPeriodStoresActiveDate() {
	expected := domain.PaymentScope{
		Scope: domain.Scope{Authed: true, PropertyID: 1},
		Year:  2026,
		Month: 8,
	}
	s.mockRemote.On("List", mock.Anything, "tok-1", expected).
		Return([]domain.RentPayment{{ID: 1}}, nil).Once()

	s.service.SetPeriod(context.Background(), 2026, 8)

	stored, ok := s.sessionState.Get(storage.KeyActiveDate)
	s.Require().True(ok)
	s.Equal("2026-08-01", stored)
	s.Len(s.service.List(), 1)
	s.mockRemote.AssertExpectations(s.T())
}

func (s *RentPaymentServiceTestSuite) TestClearingPeriodDeletesActiveDate() {
	scoped := domain.PaymentScope{
		Scope: domain.Scope{Authed: true, PropertyID: 1},
		Year:  2026,
		Month: 8,
	}
	unscoped := domain.PaymentScope{Scope: domain.Scope{Authed: true, PropertyID: 1}}
	s.mockRemote.On("List", mock.Anything, "tok-1", scoped).
		Return([]domain.RentPayment{}, nil).Once()
	s.mockRemote.On("List", mock.Anything, "tok-1", unscoped).
		Return([]domain.RentPayment{}, nil).Once()

	s.service.SetPeriod(context.Background(), 2026, 8)
	s.service.SetPeriod(context.Background(), 0, 0)

	_, ok := s.sessionState.Get(storage.KeyActiveDate)
	s.False(ok)
	s.mockRemote.AssertExpectations(s.T())
}

func (s *RentPaymentServiceTestSuite) TestPeriodRestoredFromActiveDate() {
	s.Require().NoError(s.sessionState.Set(storage.KeyActiveDate, "2026-03-01"))
	service := services.NewRentPaymentService(s.mockRemote, s.session, s.property, s.notifier, s.sessionState, testLogger())

	expected := domain.PaymentScope{
		Scope: domain.Scope{Authed: true, PropertyID: 1},
		Year:  2026,
		Month: 3,
	}
	s.mockRemote.On("List", mock.Anything, "tok-1", expected).
		Return([]domain.RentPayment{{ID: 7}}, nil).Once()

	service.ScopeChanged(context.Background())

	s.Len(service.List(), 1)
	s.mockRemote.AssertExpectations(s.T())
}

func (s *RentPaymentServiceTestSuite) TestGarbageActiveDateIsIgnored() {
	s.Require().NoError(s.sessionState.Set(storage.KeyActiveDate, "not-a-date"))
	service := services.NewRentPaymentService(s.mockRemote, s.session, s.property, s.notifier, s.sessionState, testLogger())

	expected := domain.PaymentScope{Scope: domain.Scope{Authed: true, PropertyID: 1}}
	s.mockRemote.On("List", mock.Anything, "tok-1", expected).
		Return([]domain.RentPayment{}, nil).Once()

	service.ScopeChanged(context.Background())

	s.mockRemote.AssertExpectations(s.T())
}

func TestRentPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RentPaymentServiceTestSuite))
}
