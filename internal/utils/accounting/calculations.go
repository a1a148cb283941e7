package accounting

import (
	"errors"
	"fmt"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnbalanced indicates debit and credit magnitudes do not match.
	ErrUnbalanced = errors.New("journal lines do not balance")
	// ErrMinLines indicates a journal with fewer than two lines.
	ErrMinLines = errors.New("journal must have at least two lines")
)

// SumSides totals the debit and credit magnitudes of a set of journal lines.
func SumSides(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, line := range lines {
		if line.Type == domain.Debit {
			debits = debits.Add(line.Amount)
		} else {
			credits = credits.Add(line.Amount)
		}
	}
	return debits, credits
}

// ValidateJournalBalance checks that a journal is submittable: at least two
// lines, every magnitude positive, and debit total equal to credit total.
// This is the client-side gate run before any request is sent; the backend
// remains the authority on ledger correctness.
func ValidateJournalBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return ErrMinLines
	}

	for _, line := range lines {
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("line amount must be positive, got %s", line.Amount)
		}
	}

	debits, credits := SumSides(lines)
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits total %s, credits total %s",
			ErrUnbalanced, debits.String(), credits.String())
	}
	return nil
}
