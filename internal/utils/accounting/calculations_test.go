package accounting

import (
	"testing"

	"github.com/bankpro/bankpro_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplyAndReverseAreInverses(t *testing.T) {
	balance := d("1000.50")

	afterCredit := Apply(balance, domain.Credit, d("250.25"))
	assert.True(t, afterCredit.Equal(d("1250.75")))
	assert.True(t, Reverse(afterCredit, domain.Credit, d("250.25")).Equal(balance))

	afterDebit := Apply(balance, domain.Debit, d("1000.50"))
	assert.True(t, afterDebit.IsZero(), "debiting the full balance should land exactly on zero")
	assert.True(t, Reverse(afterDebit, domain.Debit, d("1000.50")).Equal(balance))
}

func TestApplyExactDecimalMath(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3, not a float approximation.
	result := Apply(Apply(decimal.Zero, domain.Credit, d("0.1")), domain.Credit, d("0.2"))
	assert.True(t, result.Equal(d("0.3")))
}

func TestSummarize(t *testing.T) {
	movements := []domain.Movement{
		{Operation: domain.Credit, Amount: d("500000")},
		{Operation: domain.Debit, Amount: d("50000")},
		{Operation: domain.Credit, Amount: d("1500.75")},
	}

	credits, debits, closing := Summarize(d("100"), movements)
	assert.True(t, credits.Equal(d("501500.75")))
	assert.True(t, debits.Equal(d("50000")))
	assert.True(t, closing.Equal(d("451600.75")))
}

func TestSummarizeEmptyHistory(t *testing.T) {
	credits, debits, closing := Summarize(d("42.42"), nil)
	assert.True(t, credits.IsZero())
	assert.True(t, debits.IsZero())
	assert.True(t, closing.Equal(d("42.42")), "closing balance equals the initial balance with no movements")
}
