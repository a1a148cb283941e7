package restapi

import (
	"context"
	"strconv"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/core/ports/remote"
	"github.com/rentbooks/rentbooks/internal/dto"
)

type rentPaymentRemote struct {
	collection[domain.RentPayment, dto.RentPaymentPayload]
}

// NewRentPaymentRemote returns the /api/rent-payments/ adapter.
func NewRentPaymentRemote(c *Client) remote.RentPaymentRemote {
	return rentPaymentRemote{collection[domain.RentPayment, dto.RentPaymentPayload]{c: c, name: "rent-payments"}}
}

func (r rentPaymentRemote) List(ctx context.Context, token string, scope domain.PaymentScope) ([]domain.RentPayment, error) {
	q := propertyQuery(scope.PropertyID)
	if scope.Year != 0 && scope.Month != 0 {
		q.Set("year", strconv.Itoa(scope.Year))
		q.Set("month", strconv.Itoa(scope.Month))
	}
	return r.list(ctx, token, q)
}

func (r rentPaymentRemote) Create(ctx context.Context, token string, propertyID int64, p dto.RentPaymentPayload) (*domain.RentPayment, error) {
	return r.create(ctx, token, propertyQuery(propertyID), p)
}

func (r rentPaymentRemote) Update(ctx context.Context, token string, id int64, p dto.RentPaymentPayload) (*domain.RentPayment, error) {
	return r.update(ctx, token, id, p)
}

func (r rentPaymentRemote) SoftDelete(ctx context.Context, token string, id int64) error {
	return r.softDelete(ctx, token, id)
}
