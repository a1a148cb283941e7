// Package remote defines the narrow interfaces through which the engine
// talks to the bookkeeping REST API. The API is an external collaborator:
// these ports describe only the contract the client assumes, and the
// restapi adapter is their single production implementation.
package remote

import (
	"context"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/dto"
)

// PropertyRemote covers /api/properties/. Properties are scoped only by
// the access token, never by another property.
type PropertyRemote interface {
	List(ctx context.Context, token string) ([]domain.Property, error)
	Create(ctx context.Context, token string, p dto.PropertyPayload) (*domain.Property, error)
	Update(ctx context.Context, token string, id int64, p dto.PropertyPayload) (*domain.Property, error)
	SoftDelete(ctx context.Context, token string, id int64) error
}

// AccountRemote covers /api/accounts/.
type AccountRemote interface {
	List(ctx context.Context, token string, propertyID int64) ([]domain.Account, error)
	Create(ctx context.Context, token string, propertyID int64, p dto.AccountPayload) (*domain.Account, error)
	Update(ctx context.Context, token string, id int64, p dto.AccountPayload) (*domain.Account, error)
	SoftDelete(ctx context.Context, token string, id int64) error
}

// EntityRemote covers /api/entities/.
type EntityRemote interface {
	List(ctx context.Context, token string, propertyID int64) ([]domain.Entity, error)
	Create(ctx context.Context, token string, propertyID int64, p dto.EntityPayload) (*domain.Entity, error)
	Update(ctx context.Context, token string, id int64, p dto.EntityPayload) (*domain.Entity, error)
	SoftDelete(ctx context.Context, token string, id int64) error
}

// JournalRemote covers /api/journals/.
type JournalRemote interface {
	List(ctx context.Context, token string, propertyID int64) ([]domain.Journal, error)
	Create(ctx context.Context, token string, propertyID int64, p dto.JournalPayload) (*domain.Journal, error)
	Update(ctx context.Context, token string, id int64, p dto.JournalPayload) (*domain.Journal, error)
	SoftDelete(ctx context.Context, token string, id int64) error
}

// TransactionRemote covers /api/transactions/. List takes the full
// transaction scope so the adapter can append the account_id or entity_id
// query parameter the filter selects. The create endpoint answers with a
// single object for a plain create and with an array for a bulk create, so
// both Create variants normalize the response to a slice of records.
type TransactionRemote interface {
	List(ctx context.Context, token string, scope domain.TransactionScope) ([]domain.Transaction, error)
	Create(ctx context.Context, token string, propertyID int64, p dto.TransactionPayload) ([]domain.Transaction, error)
	CreateBulk(ctx context.Context, token string, propertyID int64, ps []dto.TransactionPayload) ([]domain.Transaction, error)
	Update(ctx context.Context, token string, id int64, p dto.TransactionPayload) (*domain.Transaction, error)
	SoftDelete(ctx context.Context, token string, id int64) error
}

// RentPaymentRemote covers /api/rent-payments/.
type RentPaymentRemote interface {
	List(ctx context.Context, token string, scope domain.PaymentScope) ([]domain.RentPayment, error)
	Create(ctx context.Context, token string, propertyID int64, p dto.RentPaymentPayload) (*domain.RentPayment, error)
	Update(ctx context.Context, token string, id int64, p dto.RentPaymentPayload) (*domain.RentPayment, error)
	SoftDelete(ctx context.Context, token string, id int64) error
}

// AuthRemote covers the public auth endpoints plus the profile resource.
// Login, register, activation and the password reset flow are unauthenticated;
// set_password and profile require a bearer token.
type AuthRemote interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenPair, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	Activate(ctx context.Context, req dto.ActivationRequest) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
	ResetPasswordConfirm(ctx context.Context, req dto.ResetPasswordConfirmRequest) error
	SetPassword(ctx context.Context, token string, req dto.SetPasswordRequest) error
	GetProfile(ctx context.Context, token string) (*domain.User, error)
	UpdateProfile(ctx context.Context, token string, p dto.ProfilePayload) (*domain.User, error)
}
