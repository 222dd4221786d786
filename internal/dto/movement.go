package dto

import (
	"time"

	"github.com/bankpro/bankpro_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMovementRequest carries the data to register a new movement against an
// account identified by IBAN.
type CreateMovementRequest struct {
	IBAN           string          `json:"iban" binding:"required"`
	DocumentTypeID string          `json:"documentTypeID" binding:"required"`
	ConceptID      string          `json:"conceptID" binding:"required"`
	Operation      string          `json:"operation" binding:"required,oneof=CREDIT DEBIT"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	DocumentNumber string          `json:"documentNumber" binding:"required"`
	MovementDate   time.Time       `json:"movementDate" binding:"required"`
	AccountingDate time.Time       `json:"accountingDate" binding:"required"`
	CardReference  string          `json:"cardReference"`
}

// UpdateMovementRequest carries the full replacement data for editing a
// movement. The owning account never changes.
type UpdateMovementRequest struct {
	DocumentTypeID string          `json:"documentTypeID" binding:"required"`
	ConceptID      string          `json:"conceptID" binding:"required"`
	Operation      string          `json:"operation" binding:"required,oneof=CREDIT DEBIT"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	DocumentNumber string          `json:"documentNumber" binding:"required"`
	MovementDate   time.Time       `json:"movementDate" binding:"required"`
	AccountingDate time.Time       `json:"accountingDate" binding:"required"`
	CardReference  string          `json:"cardReference"`
}

// MovementResponse is the representation of a movement returned to callers.
type MovementResponse struct {
	MovementID     string          `json:"movementID"`
	AccountID      string          `json:"accountID"`
	DocumentTypeID string          `json:"documentTypeID"`
	ConceptID      string          `json:"conceptID"`
	DocumentNumber string          `json:"documentNumber"`
	Operation      string          `json:"operation"`
	Amount         decimal.Decimal `json:"amount"`
	MovementDate   time.Time       `json:"movementDate"`
	AccountingDate time.Time       `json:"accountingDate"`
	CardReference  string          `json:"cardReference,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ListMovementsParams defines query parameters for listing movements.
type ListMovementsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListMovementsResponse wraps a page of movements and the next page token.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// NextDocumentNumberResponse is the advisory next consecutive for a document type.
type NextDocumentNumberResponse struct {
	Next int64 `json:"next"`
}

// ToMovementResponse converts a domain.Movement to MovementResponse.
func ToMovementResponse(m *domain.Movement) MovementResponse {
	return MovementResponse{
		MovementID:     m.MovementID,
		AccountID:      m.AccountID,
		DocumentTypeID: m.DocumentTypeID,
		ConceptID:      m.ConceptID,
		DocumentNumber: m.DocumentNumber,
		Operation:      string(m.Operation),
		Amount:         m.Amount,
		MovementDate:   m.MovementDate,
		AccountingDate: m.AccountingDate,
		CardReference:  m.CardReference,
		CreatedAt:      m.CreatedAt,
	}
}

// ToMovementResponses converts a slice of domain.Movement to []MovementResponse.
func ToMovementResponses(ms []domain.Movement) []MovementResponse {
	responses := make([]MovementResponse, len(ms))
	for i := range ms {
		responses[i] = ToMovementResponse(&ms[i])
	}
	return responses
}
