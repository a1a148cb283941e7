package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/core/ports/remote"
	"github.com/rentbooks/rentbooks/internal/dto"
)

type transactionRemote struct {
	collection[domain.Transaction, dto.TransactionPayload]
}

// NewTransactionRemote returns the /api/transactions/ adapter.
func NewTransactionRemote(c *Client) remote.TransactionRemote {
	return transactionRemote{collection[domain.Transaction, dto.TransactionPayload]{c: c, name: "transactions"}}
}

// List appends exactly one relation filter: account_id when filtering by
// account, entity_id when filtering by entity. The service layer never
// calls List with an unfetchable scope, so any other filter value here is
// a programming error and is sent as a bare property query.
func (r transactionRemote) List(ctx context.Context, token string, scope domain.TransactionScope) ([]domain.Transaction, error) {
	q := propertyQuery(scope.PropertyID)
	switch scope.Filter {
	case domain.FilterByAccount:
		q.Set("account_id", strconv.FormatInt(scope.AccountID, 10))
	case domain.FilterByEntity:
		q.Set("entity_id", strconv.FormatInt(scope.EntityID, 10))
	}
	return r.list(ctx, token, q)
}

func (r transactionRemote) Create(ctx context.Context, token string, propertyID int64, p dto.TransactionPayload) ([]domain.Transaction, error) {
	return r.post(ctx, token, propertyID, p)
}

// CreateBulk posts the payloads as one JSON array, creating every record in
// a single request.
func (r transactionRemote) CreateBulk(ctx context.Context, token string, propertyID int64, ps []dto.TransactionPayload) ([]domain.Transaction, error) {
	if len(ps) == 0 {
		return nil, nil
	}
	return r.post(ctx, token, propertyID, ps)
}

// post issues the create request and normalizes the response. The endpoint
// answers a plain create with one object and a bulk create with an array.
func (r transactionRemote) post(ctx context.Context, token string, propertyID int64, body any) ([]domain.Transaction, error) {
	u := r.c.endpoint(r.name) + "?" + propertyQuery(propertyID).Encode()
	var raw json.RawMessage
	if err := r.c.do(ctx, http.MethodPost, u, token, body, &raw); err != nil {
		return nil, err
	}
	return decodeCreatedTransactions(raw)
}

func decodeCreatedTransactions(raw json.RawMessage) ([]domain.Transaction, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var many []domain.Transaction
		if err := json.Unmarshal(trimmed, &many); err != nil {
			return nil, fmt.Errorf("decode response body: %w", err)
		}
		return many, nil
	}
	var one domain.Transaction
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return nil, fmt.Errorf("decode response body: %w", err)
	}
	return []domain.Transaction{one}, nil
}

func (r transactionRemote) Update(ctx context.Context, token string, id int64, p dto.TransactionPayload) (*domain.Transaction, error) {
	return r.update(ctx, token, id, p)
}

func (r transactionRemote) SoftDelete(ctx context.Context, token string, id int64) error {
	return r.softDelete(ctx, token, id)
}
