package restapi

import (
	"context"
	"net/http"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/core/ports/remote"
	"github.com/rentbooks/rentbooks/internal/dto"
)

type authRemote struct {
	c *Client
}

// NewAuthRemote returns the adapter for the auth and profile endpoints.
func NewAuthRemote(c *Client) remote.AuthRemote {
	return authRemote{c: c}
}

func (r authRemote) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenPair, error) {
	var pair dto.TokenPair
	if err := r.c.do(ctx, http.MethodPost, r.c.endpoint("auth/jwt/create"), "", req, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (r authRemote) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	var user domain.User
	if err := r.c.do(ctx, http.MethodPost, r.c.endpoint("auth/users"), "", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Activate expects a 204 from the API; any other status is a failure.
func (r authRemote) Activate(ctx context.Context, req dto.ActivationRequest) error {
	return r.c.do(ctx, http.MethodPost, r.c.endpoint("auth/users/activation"), "", req, nil)
}

func (r authRemote) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	return r.c.do(ctx, http.MethodPost, r.c.endpoint("auth/users/reset_password"), "", req, nil)
}

func (r authRemote) ResetPasswordConfirm(ctx context.Context, req dto.ResetPasswordConfirmRequest) error {
	return r.c.do(ctx, http.MethodPost, r.c.endpoint("auth/users/reset_password_confirm"), "", req, nil)
}

func (r authRemote) SetPassword(ctx context.Context, token string, req dto.SetPasswordRequest) error {
	return r.c.do(ctx, http.MethodPost, r.c.endpoint("auth/users/set_password"), token, req, nil)
}

func (r authRemote) GetProfile(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	if err := r.c.do(ctx, http.MethodGet, r.c.endpoint("profile"), token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r authRemote) UpdateProfile(ctx context.Context, token string, p dto.ProfilePayload) (*domain.User, error) {
	var user domain.User
	if err := r.c.do(ctx, http.MethodPut, r.c.endpoint("profile"), token, p, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
