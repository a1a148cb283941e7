package restapi

import (
	"context"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/core/ports/remote"
	"github.com/rentbooks/rentbooks/internal/dto"
)

type journalRemote struct {
	collection[domain.Journal, dto.JournalPayload]
}

// NewJournalRemote returns the /api/journals/ adapter.
func NewJournalRemote(c *Client) remote.JournalRemote {
	return journalRemote{collection[domain.Journal, dto.JournalPayload]{c: c, name: "journals"}}
}

func (r journalRemote) List(ctx context.Context, token string, propertyID int64) ([]domain.Journal, error) {
	return r.list(ctx, token, propertyQuery(propertyID))
}

func (r journalRemote) Create(ctx context.Context, token string, propertyID int64, p dto.JournalPayload) (*domain.Journal, error) {
	return r.create(ctx, token, propertyQuery(propertyID), p)
}

func (r journalRemote) Update(ctx context.Context, token string, id int64, p dto.JournalPayload) (*domain.Journal, error) {
	return r.update(ctx, token, id, p)
}

func (r journalRemote) SoftDelete(ctx context.Context, token string, id int64) error {
	return r.softDelete(ctx, token, id)
}
