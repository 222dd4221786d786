package domain

// Client represents a bank client who owns zero or more accounts.
type Client struct {
	ClientID   string `json:"clientID"` // Primary Key (UUID)
	Name       string `json:"name"`
	NationalID string `json:"nationalID"` // Unique national identification number
	Email      string `json:"email"`      // Unique
	Phone      string `json:"phone"`
	AuditFields
	Accounts []Account `json:"accounts,omitempty"` // Populated on list/detail reads
}
