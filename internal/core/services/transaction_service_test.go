package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/core/services"
	"github.com/rentbooks/rentbooks/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockRemote *MockTransactionRemote
	session    *stubSession
	property   *stubProperty
	accounts   *stubAccountSel
	entities   *stubEntitySel
	notifier   *recordingNotifier
	service    *services.TransactionService
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.mockRemote = new(MockTransactionRemote)
	s.session = &stubSession{token: "tok-1", authed: true}
	s.property = &stubProperty{id: 1}
	s.accounts = &stubAccountSel{id: 5}
	s.entities = &stubEntitySel{id: 9}
	s.notifier = &recordingNotifier{}
	s.service = services.NewTransactionService(s.mockRemote, s.session, s.property, s.accounts, s.entities, s.notifier, testLogger())
}

func (s *TransactionServiceTestSuite) TestNoFilterMeansNoFetch() {
	s.service.ScopeChanged(context.Background())

	s.Empty(s.service.List())
	// No List expectation was registered; a call would fail the mock.
	s.mockRemote.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestFilterByAccountFetchesWithAccountScope() {
	expected := domain.TransactionScope{
		Scope:     domain.Scope{Authed: true, PropertyID: 1},
		Filter:    domain.FilterByAccount,
		AccountID: 5,
	}
	s.mockRemote.On("List", mock.Anything, "tok-1", expected).
		Return([]domain.Transaction{{ID: 100}}, nil).Once()

	s.service.SetFilter(context.Background(), domain.FilterByAccount)

	s.Require().Len(s.service.List(), 1)
	s.mockRemote.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestFilterByEntityFetchesWithEntityScope() {
	expected := domain.TransactionScope{
		Scope:    domain.Scope{Authed: true, PropertyID: 1},
		Filter:   domain.FilterByEntity,
		EntityID: 9,
	}
	s.mockRemote.On("List", mock.Anything, "tok-1", expected).
		Return([]domain.Transaction{}, nil).Once()

	s.service.SetFilter(context.Background(), domain.FilterByEntity)

	s.mockRemote.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestInactiveSelectionDoesNotKeyTheScope() {
	expected := domain.TransactionScope{
		Scope:     domain.Scope{Authed: true, PropertyID: 1},
		Filter:    domain.FilterByAccount,
		AccountID: 5,
	}
	s.mockRemote.On("List", mock.Anything, "tok-1", expected).
		Return([]domain.Transaction{{ID: 100}}, nil).Once()

	s.service.SetFilter(context.Background(), domain.FilterByAccount)

	// The entity selection changes while filtering by account: the scope
	// key is unchanged, so no refetch happens and the cache stays.
	s.entities.id = 77
	s.service.ScopeChanged(context.Background())

	s.Len(s.service.List(), 1)
	s.mockRemote.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestClearingFilterSuppressesFetchAndDropsCache() {
	expected := domain.TransactionScope{
		Scope:     domain.Scope{Authed: true, PropertyID: 1},
		Filter:    domain.FilterByAccount,
		AccountID: 5,
	}
	s.mockRemote.On("List", mock.Anything, "tok-1", expected).
		Return([]domain.Transaction{{ID: 100}}, nil).Once()
	s.service.SetFilter(context.Background(), domain.FilterByAccount)
	s.Require().Len(s.service.List(), 1)

	s.service.SetFilter(context.Background(), domain.FilterByNone)

	s.Empty(s.service.List())
	s.mockRemote.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestFilterWithoutSelectionDoesNotFetch() {
	s.accounts.id = 0
	s.service.SetFilter(context.Background(), domain.FilterByAccount)

	s.Empty(s.service.List())
	s.mockRemote.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestAddCachesEveryCreatedRecord() {
	// The create endpoint may answer with an array even for a single
	// posted record; every confirmed record belongs in the cache.
	s.mockRemote.On("Create", mock.Anything, "tok-1", int64(1), mock.Anything).
		Return([]domain.Transaction{{ID: 11}, {ID: 12}}, nil).Once()

	created, err := s.service.Add(context.Background(), domain.Transaction{
		Date:    domain.NewDate(2026, 8, 1),
		Account: &domain.AccountRef{ID: 5},
		Type:    domain.Debit,
		Amount:  decimal.RequireFromString("1200.00"),
	})

	s.Require().NoError(err)
	s.Equal(int64(11), created.ID)
	s.Len(s.service.List(), 2)
	s.Equal([]string{"Transaction added"}, s.notifier.Successes())
	s.mockRemote.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestAddBulkPostsWholeBatch() {
	var sent []dto.TransactionPayload
	s.mockRemote.On("CreateBulk", mock.Anything, "tok-1", int64(1), mock.Anything).
		Run(func(args mock.Arguments) {
			sent = args.Get(3).([]dto.TransactionPayload)
		}).
		Return([]domain.Transaction{{ID: 21}, {ID: 22}}, nil).Once()

	batch := []domain.Transaction{
		{
			Date:    domain.NewDate(2026, 8, 1),
			Account: &domain.AccountRef{ID: 5},
			Type:    domain.Debit,
			Amount:  decimal.RequireFromString("1200.00"),
		},
		{
			Date:    domain.NewDate(2026, 8, 1),
			Account: &domain.AccountRef{ID: 6},
			Type:    domain.Credit,
			Amount:  decimal.RequireFromString("1200.00"),
		},
	}
	created, err := s.service.AddBulk(context.Background(), batch)

	s.Require().NoError(err)
	s.Len(created, 2)
	s.Require().Len(sent, 2)
	s.Equal(int64(5), sent[0].AccountID)
	s.Equal(int64(6), sent[1].AccountID)
	s.Len(s.service.List(), 2)
	s.Equal([]string{"Transactions added"}, s.notifier.Successes())
	s.mockRemote.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestAddBulkRejectsInvalidRecordInline() {
	batch := []domain.Transaction{
		{
			Date:    domain.NewDate(2026, 8, 1),
			Account: &domain.AccountRef{ID: 5},
			Type:    domain.Debit,
			Amount:  decimal.RequireFromString("1200.00"),
		},
		{Date: domain.NewDate(2026, 8, 1)}, // no account
	}
	created, err := s.service.AddBulk(context.Background(), batch)

	s.Error(err)
	s.Nil(created)
	s.Empty(s.notifier.Errors())
	s.mockRemote.AssertNotCalled(s.T(), "CreateBulk", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestAddBulkFailureNotifiesAndKeepsCache() {
	s.mockRemote.On("CreateBulk", mock.Anything, "tok-1", int64(1), mock.Anything).
		Return(nil, errors.New("boom")).Once()

	_, err := s.service.AddBulk(context.Background(), []domain.Transaction{{
		Date:    domain.NewDate(2026, 8, 1),
		Account: &domain.AccountRef{ID: 5},
		Type:    domain.Debit,
		Amount:  decimal.RequireFromString("1200.00"),
	}})

	s.Error(err)
	s.Equal([]string{"Failed to add transactions"}, s.notifier.Errors())
	s.mockRemote.AssertExpectations(s.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
