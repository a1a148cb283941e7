package dto

import "github.com/rentbooks/rentbooks/internal/core/domain"

// AccountPayload is the outgoing body for account create and update calls.
type AccountPayload struct {
	Name        string             `json:"name" validate:"required"`
	Type        domain.AccountType `json:"type" validate:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Description string             `json:"description"`
}

// SoftDeletePayload marks a record deleted server-side. Soft deletes are a
// PUT of this body to the item endpoint, never an HTTP DELETE.
type SoftDeletePayload struct {
	IsDeleted bool `json:"is_deleted"`
}
