package accounting_test

import (
	"testing"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(t domain.LineType, amount string) domain.JournalLine {
	return domain.JournalLine{Type: t, Amount: decimal.RequireFromString(amount)}
}

func TestValidateJournalBalance_Balanced(t *testing.T) {
	lines := []domain.JournalLine{
		line(domain.Debit, "1200.00"),
		line(domain.Credit, "1000.00"),
		line(domain.Credit, "200.00"),
	}

	assert.NoError(t, accounting.ValidateJournalBalance(lines))
}

func TestValidateJournalBalance_Unbalanced(t *testing.T) {
	lines := []domain.JournalLine{
		line(domain.Debit, "1200.00"),
		line(domain.Credit, "1100.00"),
	}

	err := accounting.ValidateJournalBalance(lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, accounting.ErrUnbalanced)
}

func TestValidateJournalBalance_TooFewLines(t *testing.T) {
	err := accounting.ValidateJournalBalance([]domain.JournalLine{line(domain.Debit, "10")})
	assert.ErrorIs(t, err, accounting.ErrMinLines)
}

func TestValidateJournalBalance_NonPositiveAmount(t *testing.T) {
	lines := []domain.JournalLine{
		line(domain.Debit, "0"),
		line(domain.Credit, "0"),
	}

	assert.Error(t, accounting.ValidateJournalBalance(lines))
}

func TestSumSides(t *testing.T) {
	debits, credits := accounting.SumSides([]domain.JournalLine{
		line(domain.Debit, "50"),
		line(domain.Debit, "25"),
		line(domain.Credit, "75"),
	})

	assert.True(t, debits.Equal(decimal.RequireFromString("75")))
	assert.True(t, credits.Equal(decimal.RequireFromString("75")))
}
