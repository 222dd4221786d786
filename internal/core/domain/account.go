package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a bank account owned by exactly one client.
//
// CurrentBalance is materialized, not recomputed from history on every read.
// Invariant: CurrentBalance == InitialBalance + sum of signed movement amounts
// (credits positive, debits negative). Every ledger mutation recomputes it
// incrementally inside the same transaction that writes the movement.
type Account struct {
	AccountID      string          `json:"accountID"` // Primary Key (UUID)
	ClientID       string          `json:"clientID"`  // FK -> clients.client_id
	IBAN           string          `json:"iban"`      // Unique external identifier
	AccountNumber  string          `json:"accountNumber"`
	AccountType    string          `json:"accountType"` // e.g. savings, checking
	Currency       string          `json:"currency"`    // ISO currency code, e.g. CRC
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	AuditFields
}
