package dto

import (
	"github.com/bankpro/bankpro_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatementResponse is the full account statement: account and owner details,
// the movement history and the derived balance summary.
type StatementResponse struct {
	Account        AccountResponse    `json:"account"`
	Client         ClientResponse     `json:"client"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	TotalCredits   decimal.Decimal    `json:"totalCredits"`
	TotalDebits    decimal.Decimal    `json:"totalDebits"`
	ClosingBalance decimal.Decimal    `json:"closingBalance"`
	Movements      []MovementResponse `json:"movements"`
}

// ToStatementResponse converts a domain.Statement to StatementResponse.
func ToStatementResponse(s *domain.Statement) StatementResponse {
	return StatementResponse{
		Account:        ToAccountResponse(&s.Account),
		Client:         ToClientResponse(&s.Client),
		OpeningBalance: s.OpeningBalance,
		TotalCredits:   s.TotalCredits,
		TotalDebits:    s.TotalDebits,
		ClosingBalance: s.ClosingBalance,
		Movements:      ToMovementResponses(s.Movements),
	}
}
