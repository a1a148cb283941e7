package services_test

import (
	"context"
	"sync"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Remote mocks -----------------------------------------------------------

type MockAccountRemote struct {
	mock.Mock
}

func (m *MockAccountRemote) List(ctx context.Context, token string, propertyID int64) ([]domain.Account, error) {
	args := m.Called(ctx, token, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRemote) Create(ctx context.Context, token string, propertyID int64, p dto.AccountPayload) (*domain.Account, error) {
	args := m.Called(ctx, token, propertyID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRemote) Update(ctx context.Context, token string, id int64, p dto.AccountPayload) (*domain.Account, error) {
	args := m.Called(ctx, token, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRemote) SoftDelete(ctx context.Context, token string, id int64) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

type MockPropertyRemote struct {
	mock.Mock
}

func (m *MockPropertyRemote) List(ctx context.Context, token string) ([]domain.Property, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *MockPropertyRemote) Create(ctx context.Context, token string, p dto.PropertyPayload) (*domain.Property, error) {
	args := m.Called(ctx, token, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyRemote) Update(ctx context.Context, token string, id int64, p dto.PropertyPayload) (*domain.Property, error) {
	args := m.Called(ctx, token, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyRemote) SoftDelete(ctx context.Context, token string, id int64) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

type MockJournalRemote struct {
	mock.Mock
}

func (m *MockJournalRemote) List(ctx context.Context, token string, propertyID int64) ([]domain.Journal, error) {
	args := m.Called(ctx, token, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRemote) Create(ctx context.Context, token string, propertyID int64, p dto.JournalPayload) (*domain.Journal, error) {
	args := m.Called(ctx, token, propertyID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRemote) Update(ctx context.Context, token string, id int64, p dto.JournalPayload) (*domain.Journal, error) {
	args := m.Called(ctx, token, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRemote) SoftDelete(ctx context.Context, token string, id int64) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

type MockTransactionRemote struct {
	mock.Mock
}

func (m *MockTransactionRemote) List(ctx context.Context, token string, scope domain.TransactionScope) ([]domain.Transaction, error) {
	args := m.Called(ctx, token, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRemote) Create(ctx context.Context, token string, propertyID int64, p dto.TransactionPayload) ([]domain.Transaction, error) {
	args := m.Called(ctx, token, propertyID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRemote) CreateBulk(ctx context.Context, token string, propertyID int64, ps []dto.TransactionPayload) ([]domain.Transaction, error) {
	args := m.Called(ctx, token, propertyID, ps)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRemote) Update(ctx context.Context, token string, id int64, p dto.TransactionPayload) (*domain.Transaction, error) {
	args := m.Called(ctx, token, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRemote) SoftDelete(ctx context.Context, token string, id int64) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

type MockRentPaymentRemote struct {
	mock.Mock
}

func (m *MockRentPaymentRemote) List(ctx context.Context, token string, scope domain.PaymentScope) ([]domain.RentPayment, error) {
	args := m.Called(ctx, token, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRemote) Create(ctx context.Context, token string, propertyID int64, p dto.RentPaymentPayload) (*domain.RentPayment, error) {
	args := m.Called(ctx, token, propertyID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRemote) Update(ctx context.Context, token string, id int64, p dto.RentPaymentPayload) (*domain.RentPayment, error) {
	args := m.Called(ctx, token, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRemote) SoftDelete(ctx context.Context, token string, id int64) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

type MockAuthRemote struct {
	mock.Mock
}

func (m *MockAuthRemote) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenPair, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenPair), args.Error(1)
}

func (m *MockAuthRemote) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthRemote) Activate(ctx context.Context, req dto.ActivationRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockAuthRemote) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockAuthRemote) ResetPasswordConfirm(ctx context.Context, req dto.ResetPasswordConfirmRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockAuthRemote) SetPassword(ctx context.Context, token string, req dto.SetPasswordRequest) error {
	return m.Called(ctx, token, req).Error(0)
}

func (m *MockAuthRemote) GetProfile(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthRemote) UpdateProfile(ctx context.Context, token string, p dto.ProfilePayload) (*domain.User, error) {
	args := m.Called(ctx, token, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Dependency stubs -------------------------------------------------------

type stubSession struct {
	token  string
	authed bool
}

func (s *stubSession) Token() string       { return s.token }
func (s *stubSession) Authenticated() bool { return s.authed }

type stubProperty struct {
	id int64
}

func (s *stubProperty) ActivePropertyID() int64 { return s.id }

type stubAccountSel struct {
	id int64
}

func (s *stubAccountSel) ActiveAccountID() int64 { return s.id }

type stubEntitySel struct {
	id int64
}

func (s *stubEntitySel) ActiveEntityID() int64 { return s.id }

// recordingNotifier captures notification requests without any timing.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Notify(nf domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if nf.Severity == domain.SeverityError {
		n.errors = append(n.errors, nf.Text)
	} else {
		n.successes = append(n.successes, nf.Text)
	}
}

func (n *recordingNotifier) Success(text string) {
	n.Notify(domain.Notification{Text: text, Severity: domain.SeveritySuccess})
}

func (n *recordingNotifier) Error(text string) {
	n.Notify(domain.Notification{Text: text, Severity: domain.SeverityError})
}

func (n *recordingNotifier) Hide() {}

func (n *recordingNotifier) Current() *domain.Notification { return nil }

func (n *recordingNotifier) Subscribe() (<-chan domain.Notification, func(), error) {
	return nil, nil, nil
}

func (n *recordingNotifier) Successes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.successes))
	copy(out, n.successes)
	return out
}

func (n *recordingNotifier) Errors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.errors))
	copy(out, n.errors)
	return out
}

// scopeSpy counts scope-change notifications.
type scopeSpy struct {
	mu    sync.Mutex
	calls int
}

func (s *scopeSpy) ScopeChanged(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
}

func (s *scopeSpy) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
