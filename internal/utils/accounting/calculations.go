// Package accounting holds the balance arithmetic shared by the ledger
// service and the statement aggregator. All amounts are decimal so the math
// is exact; never use floats for money.
package accounting

import (
	"github.com/bankpro/bankpro_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Apply returns the balance after applying a movement's effect: credits add,
// debits subtract.
func Apply(balance decimal.Decimal, operation domain.OperationType, amount decimal.Decimal) decimal.Decimal {
	if operation == domain.Debit {
		return balance.Sub(amount)
	}
	return balance.Add(amount)
}

// Reverse returns the balance after undoing a movement's effect. It is the
// exact inverse of Apply.
func Reverse(balance decimal.Decimal, operation domain.OperationType, amount decimal.Decimal) decimal.Decimal {
	if operation == domain.Debit {
		return balance.Add(amount)
	}
	return balance.Sub(amount)
}

// Summarize folds a movement history over an initial balance and returns the
// total credits, total debits and the closing balance.
func Summarize(initialBalance decimal.Decimal, movements []domain.Movement) (totalCredits, totalDebits, closingBalance decimal.Decimal) {
	totalCredits = decimal.Zero
	totalDebits = decimal.Zero
	closingBalance = initialBalance
	for i := range movements {
		if movements[i].Operation == domain.Debit {
			totalDebits = totalDebits.Add(movements[i].Amount)
		} else {
			totalCredits = totalCredits.Add(movements[i].Amount)
		}
		closingBalance = closingBalance.Add(movements[i].SignedAmount())
	}
	return totalCredits, totalDebits, closingBalance
}
