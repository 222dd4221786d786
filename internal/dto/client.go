package dto

import (
	"time"

	"github.com/bankpro/bankpro_backend/internal/core/domain"
)

// CreateClientRequest carries the data to register a new client.
type CreateClientRequest struct {
	Name       string `json:"name" binding:"required"`
	NationalID string `json:"nationalID" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
}

// ClientResponse is the representation of a client, optionally with accounts.
type ClientResponse struct {
	ClientID   string            `json:"clientID"`
	Name       string            `json:"name"`
	NationalID string            `json:"nationalID"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	CreatedAt  time.Time         `json:"createdAt"`
	Accounts   []AccountResponse `json:"accounts,omitempty"`
}

// ListClientsResponse wraps the list of clients.
type ListClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// ToClientResponse converts a domain.Client to ClientResponse.
func ToClientResponse(c *domain.Client) ClientResponse {
	resp := ClientResponse{
		ClientID:   c.ClientID,
		Name:       c.Name,
		NationalID: c.NationalID,
		Email:      c.Email,
		Phone:      c.Phone,
		CreatedAt:  c.CreatedAt,
	}
	if len(c.Accounts) > 0 {
		resp.Accounts = make([]AccountResponse, len(c.Accounts))
		for i := range c.Accounts {
			resp.Accounts[i] = ToAccountResponse(&c.Accounts[i])
		}
	}
	return resp
}

// ToListClientsResponse converts a slice of domain.Client to ListClientsResponse.
func ToListClientsResponse(clients []domain.Client) ListClientsResponse {
	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return ListClientsResponse{Clients: responses}
}
