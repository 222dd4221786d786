package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType indicates whether a movement credits or debits its account.
type OperationType string

const (
	Credit OperationType = "CREDIT"
	Debit  OperationType = "DEBIT"
)

// IsValid reports whether the operation is one of the two closed variants.
func (o OperationType) IsValid() bool {
	return o == Credit || o == Debit
}

// Movement is a single dated credit or debit against an account. Movements are
// created, edited and deleted only through the ledger's transactional
// operations, never directly.
type Movement struct {
	MovementID     string          `json:"movementID"`     // Primary Key (UUID)
	AccountID      string          `json:"accountID"`      // FK -> accounts.account_id
	DocumentTypeID string          `json:"documentTypeID"` // FK -> document_types.document_type_id
	ConceptID      string          `json:"conceptID"`      // FK -> concepts.concept_id
	DocumentNumber string          `json:"documentNumber"` // Unique per document type
	Operation      OperationType   `json:"operation"`
	Amount         decimal.Decimal `json:"amount"` // Always positive
	MovementDate   time.Time       `json:"movementDate"`
	AccountingDate time.Time       `json:"accountingDate"` // Must be >= MovementDate
	CardReference  string          `json:"cardReference,omitempty"`
	AuditFields
}

// SignedAmount returns the movement's effect on its account balance:
// positive for credits, negative for debits.
func (m Movement) SignedAmount() decimal.Decimal {
	if m.Operation == Debit {
		return m.Amount.Neg()
	}
	return m.Amount
}
