package dto

import "github.com/rentbooks/rentbooks/internal/core/domain"

// EntityPayload is the outgoing body for entity create and update calls.
type EntityPayload struct {
	Name  string            `json:"name" validate:"required"`
	Kind  domain.EntityKind `json:"kind" validate:"required,oneof=TENANT VENDOR OTHER"`
	Email string            `json:"email" validate:"omitempty,email"`
	Phone string            `json:"phone"`
}
