package restapi

import (
	"context"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/core/ports/remote"
	"github.com/rentbooks/rentbooks/internal/dto"
)

type entityRemote struct {
	collection[domain.Entity, dto.EntityPayload]
}

// NewEntityRemote returns the /api/entities/ adapter.
func NewEntityRemote(c *Client) remote.EntityRemote {
	return entityRemote{collection[domain.Entity, dto.EntityPayload]{c: c, name: "entities"}}
}

func (r entityRemote) List(ctx context.Context, token string, propertyID int64) ([]domain.Entity, error) {
	return r.list(ctx, token, propertyQuery(propertyID))
}

func (r entityRemote) Create(ctx context.Context, token string, propertyID int64, p dto.EntityPayload) (*domain.Entity, error) {
	return r.create(ctx, token, propertyQuery(propertyID), p)
}

func (r entityRemote) Update(ctx context.Context, token string, id int64, p dto.EntityPayload) (*domain.Entity, error) {
	return r.update(ctx, token, id, p)
}

func (r entityRemote) SoftDelete(ctx context.Context, token string, id int64) error {
	return r.softDelete(ctx, token, id)
}
