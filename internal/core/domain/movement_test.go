package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSignedAmount(t *testing.T) {
	credit := Movement{Operation: Credit, Amount: decimal.RequireFromString("1500.75")}
	assert.True(t, credit.SignedAmount().Equal(decimal.RequireFromString("1500.75")))

	debit := Movement{Operation: Debit, Amount: decimal.RequireFromString("1500.75")}
	assert.True(t, debit.SignedAmount().Equal(decimal.RequireFromString("-1500.75")))
}

func TestOperationTypeIsValid(t *testing.T) {
	assert.True(t, Credit.IsValid())
	assert.True(t, Debit.IsValid())
	assert.False(t, OperationType("TRANSFER").IsValid())
	assert.False(t, OperationType("").IsValid())
}
