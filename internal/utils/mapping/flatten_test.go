package mapping_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToTransactionPayloadFlattensRelations(t *testing.T) {
	txn := domain.Transaction{
		ID:      9,
		Date:    domain.NewDate(2026, time.August, 1),
		Account: &domain.AccountRef{ID: 5, Name: "Checking"},
		Entity:  &domain.EntityRef{ID: 7, Name: "Jane Tenant"},
		Type:    domain.Debit,
		Amount:  decimal.RequireFromString("1200.00"),
		Memo:    "August rent",
	}

	p := mapping.ToTransactionPayload(txn)

	assert.Equal(t, int64(5), p.AccountID)
	assert.Equal(t, int64(7), p.EntityID)

	// The nested relation objects must not survive into the wire body.
	body, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(body), `"account":`)
	assert.NotContains(t, string(body), `"entity":`)
	assert.Contains(t, string(body), `"account_id":5`)
	assert.Contains(t, string(body), `"entity_id":7`)
}

func TestToTransactionPayloadNilRelations(t *testing.T) {
	p := mapping.ToTransactionPayload(domain.Transaction{Type: domain.Credit})

	assert.Zero(t, p.AccountID)
	assert.Zero(t, p.EntityID)
}

func TestToJournalPayloadFlattensLineAccounts(t *testing.T) {
	j := domain.Journal{
		Date: domain.NewDate(2026, time.August, 1),
		Memo: "Security deposit",
		Lines: []domain.JournalLine{
			{Account: &domain.AccountRef{ID: 1, Name: "Cash"}, Type: domain.Debit, Amount: decimal.NewFromInt(500)},
			{Account: &domain.AccountRef{ID: 2, Name: "Deposits Held"}, Type: domain.Credit, Amount: decimal.NewFromInt(500)},
		},
	}

	p := mapping.ToJournalPayload(j)

	require.Len(t, p.Lines, 2)
	assert.Equal(t, int64(1), p.Lines[0].AccountID)
	assert.Equal(t, int64(2), p.Lines[1].AccountID)
}

func TestToRentPaymentPayloadFlattensEntity(t *testing.T) {
	p := mapping.ToRentPaymentPayload(domain.RentPayment{
		Entity: &domain.EntityRef{ID: 3, Name: "Jane Tenant"},
		Year:   2026,
		Month:  8,
		Amount: decimal.NewFromInt(1200),
		PaidOn: domain.NewDate(2026, time.August, 3),
	})

	assert.Equal(t, int64(3), p.EntityID)
	assert.Equal(t, 2026, p.Year)
	assert.Equal(t, 8, p.Month)
}
