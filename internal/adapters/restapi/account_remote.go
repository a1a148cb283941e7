package restapi

import (
	"context"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/core/ports/remote"
	"github.com/rentbooks/rentbooks/internal/dto"
)

type accountRemote struct {
	collection[domain.Account, dto.AccountPayload]
}

// NewAccountRemote returns the /api/accounts/ adapter.
func NewAccountRemote(c *Client) remote.AccountRemote {
	return accountRemote{collection[domain.Account, dto.AccountPayload]{c: c, name: "accounts"}}
}

func (r accountRemote) List(ctx context.Context, token string, propertyID int64) ([]domain.Account, error) {
	return r.list(ctx, token, propertyQuery(propertyID))
}

func (r accountRemote) Create(ctx context.Context, token string, propertyID int64, p dto.AccountPayload) (*domain.Account, error) {
	return r.create(ctx, token, propertyQuery(propertyID), p)
}

func (r accountRemote) Update(ctx context.Context, token string, id int64, p dto.AccountPayload) (*domain.Account, error) {
	return r.update(ctx, token, id, p)
}

func (r accountRemote) SoftDelete(ctx context.Context, token string, id int64) error {
	return r.softDelete(ctx, token, id)
}
