package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/core/services"
	"github.com/rentbooks/rentbooks/internal/dto"
	"github.com/rentbooks/rentbooks/internal/platform/storage"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SessionServiceTestSuite struct {
	suite.Suite
	mockRemote *MockAuthRemote
	store      *storage.MemStore
	notifier   *recordingNotifier
	clock      *fakeClock
	service    *services.SessionService
}

func (s *SessionServiceTestSuite) SetupTest() {
	s.mockRemote = new(MockAuthRemote)
	s.store = storage.NewMemStore()
	s.notifier = &recordingNotifier{}
	s.clock = newFakeClock()
	s.service = services.NewSessionService(s.mockRemote, s.store, s.notifier, s.clock, testLogger())
}

// signedToken builds a real HS256 token expiring at the given offset from
// the fake clock's base time.
func (s *SessionServiceTestSuite) signedToken(expiresIn time.Duration) string {
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(s.clock.Now().Add(expiresIn)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	s.Require().NoError(err)
	return token
}

func (s *SessionServiceTestSuite) TestLoginPersistsAccessToken() {
	access := s.signedToken(time.Hour)
	req := dto.LoginRequest{Email: "owner@example.com", Password: "hunter22"}
	s.mockRemote.On("Login", mock.Anything, req).
		Return(&dto.TokenPair{Access: access, Refresh: "refresh-1"}, nil).Once()

	err := s.service.Login(context.Background(), req)

	s.Require().NoError(err)
	s.Equal(access, s.service.Token())
	stored, ok := s.store.Get(storage.KeyAccessToken)
	s.True(ok)
	s.Equal(access, stored)
	s.True(s.service.Authenticated())
	s.mockRemote.AssertExpectations(s.T())
}

func (s *SessionServiceTestSuite) TestLoginFailureNotifiesAndKeepsLoggedOut() {
	req := dto.LoginRequest{Email: "owner@example.com", Password: "wrong"}
	s.mockRemote.On("Login", mock.Anything, req).
		Return(nil, errors.New("401")).Once()

	err := s.service.Login(context.Background(), req)

	s.Require().Error(err)
	s.Equal([]string{"Login failed"}, s.notifier.Errors())
	s.Empty(s.service.Token())
	_, ok := s.store.Get(storage.KeyAccessToken)
	s.False(ok)
}

func (s *SessionServiceTestSuite) TestLoginValidationFailureSendsNothing() {
	err := s.service.Login(context.Background(), dto.LoginRequest{Email: "not-an-email", Password: ""})

	s.Require().Error(err)
	s.Empty(s.notifier.Errors())
	s.mockRemote.AssertNotCalled(s.T(), "Login", mock.Anything, mock.Anything)
}

func (s *SessionServiceTestSuite) TestLoginNotifiesScopeListeners() {
	spy := &scopeSpy{}
	s.service.RegisterScopeListener(spy)
	access := s.signedToken(time.Hour)
	req := dto.LoginRequest{Email: "owner@example.com", Password: "hunter22"}
	s.mockRemote.On("Login", mock.Anything, req).
		Return(&dto.TokenPair{Access: access}, nil).Once()

	s.Require().NoError(s.service.Login(context.Background(), req))

	s.Equal(1, spy.Calls())
}

func (s *SessionServiceTestSuite) TestLogoutClearsTokenAndCascades() {
	spy := &scopeSpy{}
	s.service.RegisterScopeListener(spy)
	s.Require().NoError(s.store.Set(storage.KeyAccessToken, s.signedToken(time.Hour)))

	s.service.Logout(context.Background())

	s.Empty(s.service.Token())
	s.False(s.service.Authenticated())
	_, ok := s.store.Get(storage.KeyAccessToken)
	s.False(ok)
	s.Equal(1, spy.Calls())
}

func (s *SessionServiceTestSuite) TestTokenRestoredFromStoreOnConstruction() {
	access := s.signedToken(time.Hour)
	s.Require().NoError(s.store.Set(storage.KeyAccessToken, access))

	restored := services.NewSessionService(s.mockRemote, s.store, s.notifier, s.clock, testLogger())

	s.Equal(access, restored.Token())
	s.True(restored.Authenticated())
}

func (s *SessionServiceTestSuite) TestAuthenticatedFalseForExpiredToken() {
	access := s.signedToken(time.Hour)
	s.Require().NoError(s.store.Set(storage.KeyAccessToken, access))
	restored := services.NewSessionService(s.mockRemote, s.store, s.notifier, s.clock, testLogger())

	s.clock.Advance(2 * time.Hour)

	s.False(restored.Authenticated())
	s.NotEmpty(restored.Token())
}

func (s *SessionServiceTestSuite) TestAuthenticatedFalseForGarbageToken() {
	s.Require().NoError(s.store.Set(storage.KeyAccessToken, "not-a-jwt"))
	restored := services.NewSessionService(s.mockRemote, s.store, s.notifier, s.clock, testLogger())

	s.False(restored.Authenticated())
}

func (s *SessionServiceTestSuite) TestProfileFetchedOnceThenCached() {
	access := s.signedToken(time.Hour)
	req := dto.LoginRequest{Email: "owner@example.com", Password: "hunter22"}
	s.mockRemote.On("Login", mock.Anything, req).
		Return(&dto.TokenPair{Access: access}, nil).Once()
	s.Require().NoError(s.service.Login(context.Background(), req))
	s.mockRemote.On("GetProfile", mock.Anything, access).
		Return(&domain.User{ID: 1, Email: "owner@example.com"}, nil).Once()

	first, err := s.service.Profile(context.Background())
	s.Require().NoError(err)
	second, err := s.service.Profile(context.Background())
	s.Require().NoError(err)

	s.Equal(first.Email, second.Email)
	s.mockRemote.AssertNumberOfCalls(s.T(), "GetProfile", 1)
}

func (s *SessionServiceTestSuite) TestActivateNotifiesOnOutcome() {
	req := dto.ActivationRequest{UID: "MQ", Token: "abc-123"}
	s.mockRemote.On("Activate", mock.Anything, req).Return(nil).Once()

	s.Require().NoError(s.service.Activate(context.Background(), req))

	s.Equal([]string{"Account activated"}, s.notifier.Successes())
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}
