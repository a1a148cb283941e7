package services

import (
	"context"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/dto"
)

// SessionSvcFacade owns the access token and the cached user profile.
// Login/logout notify registered scope listeners so every property-scoped
// collection reacts to the token appearing or disappearing.
type SessionSvcFacade interface {
	SessionReader
	Login(ctx context.Context, req dto.LoginRequest) error
	Logout(ctx context.Context)
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	Activate(ctx context.Context, req dto.ActivationRequest) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
	ResetPasswordConfirm(ctx context.Context, req dto.ResetPasswordConfirmRequest) error
	SetPassword(ctx context.Context, req dto.SetPasswordRequest) error
	Profile(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, p dto.ProfilePayload) (*domain.User, error)
	RegisterScopeListener(l ScopeListener)
}
