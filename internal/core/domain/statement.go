package domain

import "github.com/shopspring/decimal"

// Statement is the derived read-only view of an account's history: opening and
// closing balances plus credit/debit totals over all recorded movements.
// ClosingBalance always equals the account's materialized CurrentBalance.
type Statement struct {
	Account        Account         `json:"account"`
	Client         Client          `json:"client"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TotalCredits   decimal.Decimal `json:"totalCredits"`
	TotalDebits    decimal.Decimal `json:"totalDebits"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	Movements      []Movement      `json:"movements"`
}
