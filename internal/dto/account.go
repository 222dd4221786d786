package dto

import (
	"time"

	"github.com/bankpro/bankpro_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest carries the data to open a new account for a client.
type CreateAccountRequest struct {
	ClientID       string          `json:"clientID" binding:"required"`
	IBAN           string          `json:"iban" binding:"required"`
	AccountNumber  string          `json:"accountNumber" binding:"required"`
	AccountType    string          `json:"accountType"`
	Currency       string          `json:"currency"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

// AccountResponse is the representation of an account returned to callers.
type AccountResponse struct {
	AccountID      string          `json:"accountID"`
	ClientID       string          `json:"clientID"`
	IBAN           string          `json:"iban"`
	AccountNumber  string          `json:"accountNumber"`
	AccountType    string          `json:"accountType"`
	Currency       string          `json:"currency"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      a.AccountID,
		ClientID:       a.ClientID,
		IBAN:           a.IBAN,
		AccountNumber:  a.AccountNumber,
		AccountType:    a.AccountType,
		Currency:       a.Currency,
		InitialBalance: a.InitialBalance,
		CurrentBalance: a.CurrentBalance,
		CreatedAt:      a.CreatedAt,
	}
}
