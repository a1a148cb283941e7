package restapi

import (
	"context"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/core/ports/remote"
	"github.com/rentbooks/rentbooks/internal/dto"
)

type propertyRemote struct {
	collection[domain.Property, dto.PropertyPayload]
}

// NewPropertyRemote returns the /api/properties/ adapter.
func NewPropertyRemote(c *Client) remote.PropertyRemote {
	return propertyRemote{collection[domain.Property, dto.PropertyPayload]{c: c, name: "properties"}}
}

func (r propertyRemote) List(ctx context.Context, token string) ([]domain.Property, error) {
	return r.list(ctx, token, nil)
}

func (r propertyRemote) Create(ctx context.Context, token string, p dto.PropertyPayload) (*domain.Property, error) {
	return r.create(ctx, token, nil, p)
}

func (r propertyRemote) Update(ctx context.Context, token string, id int64, p dto.PropertyPayload) (*domain.Property, error) {
	return r.update(ctx, token, id, p)
}

func (r propertyRemote) SoftDelete(ctx context.Context, token string, id int64) error {
	return r.softDelete(ctx, token, id)
}
