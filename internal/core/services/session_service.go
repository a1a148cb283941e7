package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/core/ports/remote"
	portssvc "github.com/rentbooks/rentbooks/internal/core/ports/services"
	"github.com/rentbooks/rentbooks/internal/dto"
	"github.com/rentbooks/rentbooks/internal/platform/storage"
)

// SessionService owns the access token and the cached user profile. The
// token is restored from the durable store on construction and persisted
// under the "accessToken" key on login. Every token transition notifies the
// registered scope listeners.
type SessionService struct {
	mu        sync.Mutex
	remote    remote.AuthRemote
	store     storage.Store
	notifier  portssvc.Notifier
	clock     portssvc.Clock
	logger    *slog.Logger
	token     string
	profile   *domain.User
	listeners []portssvc.ScopeListener
}

var _ portssvc.SessionSvcFacade = (*SessionService)(nil)

// NewSessionService builds the session, restoring any persisted token.
func NewSessionService(authRemote remote.AuthRemote, store storage.Store, notifier portssvc.Notifier, clock portssvc.Clock, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &SessionService{
		remote:   authRemote,
		store:    store,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
	}
	if token, ok := store.Get(storage.KeyAccessToken); ok {
		s.token = token
	}
	return s
}

// RegisterScopeListener adds a listener notified on every token transition.
func (s *SessionService) RegisterScopeListener(l portssvc.ScopeListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Token returns the raw access token, or "" when logged out.
func (s *SessionService) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Authenticated reports whether a usable token is held: present and, when
// it carries an exp claim, not yet expired. The claim is read without
// signature verification; the API remains the authority on validity.
func (s *SessionService) Authenticated() bool {
	token := s.Token()
	if token == "" {
		return false
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		s.logger.Warn("stored access token is not parseable", slog.String("error", err.Error()))
		return false
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(s.clock.Now()) {
		return false
	}
	return true
}

// Login exchanges credentials for a token pair, persists the access token,
// and notifies scope listeners.
func (s *SessionService) Login(ctx context.Context, req dto.LoginRequest) error {
	if err := dto.Validate(req); err != nil {
		return err
	}
	pair, err := s.remote.Login(ctx, req)
	if err != nil {
		s.notifier.Error("Login failed")
		return err
	}

	s.mu.Lock()
	s.token = pair.Access
	s.profile = nil
	s.mu.Unlock()

	if err := s.store.Set(storage.KeyAccessToken, pair.Access); err != nil {
		s.logger.Error("failed to persist access token", slog.String("error", err.Error()))
	}
	s.notifyListeners(ctx)
	return nil
}

// Logout clears the token and cached profile and notifies scope listeners,
// which drops every property-scoped collection.
func (s *SessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.profile = nil
	s.mu.Unlock()

	if err := s.store.Delete(storage.KeyAccessToken); err != nil {
		s.logger.Error("failed to clear persisted token", slog.String("error", err.Error()))
	}
	s.notifyListeners(ctx)
}

// Register creates a new user account. The user still has to activate it.
func (s *SessionService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	user, err := s.remote.Register(ctx, req)
	if err != nil {
		s.notifier.Error("Registration failed")
		return nil, err
	}
	s.notifier.Success("Account registered")
	return user, nil
}

// Activate confirms a registration with the uid/token pair from the
// activation email.
func (s *SessionService) Activate(ctx context.Context, req dto.ActivationRequest) error {
	if err := dto.Validate(req); err != nil {
		return err
	}
	if err := s.remote.Activate(ctx, req); err != nil {
		s.notifier.Error("Activation failed")
		return err
	}
	s.notifier.Success("Account activated")
	return nil
}

// ResetPassword requests a password reset email.
func (s *SessionService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	if err := dto.Validate(req); err != nil {
		return err
	}
	if err := s.remote.ResetPassword(ctx, req); err != nil {
		s.notifier.Error("Password reset request failed")
		return err
	}
	s.notifier.Success("Password reset email sent")
	return nil
}

// ResetPasswordConfirm completes the password reset flow.
func (s *SessionService) ResetPasswordConfirm(ctx context.Context, req dto.ResetPasswordConfirmRequest) error {
	if err := dto.Validate(req); err != nil {
		return err
	}
	if err := s.remote.ResetPasswordConfirm(ctx, req); err != nil {
		s.notifier.Error("Password reset failed")
		return err
	}
	s.notifier.Success("Password reset")
	return nil
}

// SetPassword changes the password of the logged-in user.
func (s *SessionService) SetPassword(ctx context.Context, req dto.SetPasswordRequest) error {
	if err := dto.Validate(req); err != nil {
		return err
	}
	if err := s.remote.SetPassword(ctx, s.Token(), req); err != nil {
		s.notifier.Error("Password change failed")
		return err
	}
	s.notifier.Success("Password changed")
	return nil
}

// Profile returns the cached profile, fetching it on first use.
func (s *SessionService) Profile(ctx context.Context) (*domain.User, error) {
	s.mu.Lock()
	if s.profile != nil {
		cached := *s.profile
		s.mu.Unlock()
		return &cached, nil
	}
	s.mu.Unlock()

	user, err := s.remote.GetProfile(ctx, s.Token())
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.profile = user
	s.mu.Unlock()
	return user, nil
}

// UpdateProfile writes the profile and refreshes the cache on success.
func (s *SessionService) UpdateProfile(ctx context.Context, p dto.ProfilePayload) (*domain.User, error) {
	if err := dto.Validate(p); err != nil {
		return nil, err
	}
	user, err := s.remote.UpdateProfile(ctx, s.Token(), p)
	if err != nil {
		s.notifier.Error("Failed to update profile")
		return nil, err
	}
	s.mu.Lock()
	s.profile = user
	s.mu.Unlock()
	s.notifier.Success("Profile updated")
	return user, nil
}

func (s *SessionService) notifyListeners(ctx context.Context) {
	s.mu.Lock()
	listeners := make([]portssvc.ScopeListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, l := range listeners {
		l.ScopeChanged(ctx)
	}
}
