package domain

import "time"

// UserRole is the closed set of back-office roles.
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleOperator UserRole = "OPERATOR"
)

// IsValid reports whether the role is one of the known variants.
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleOperator
}

// User is a back-office operator or administrator.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Name         string   `json:"name"`
	Email        string   `json:"email"` // Unique
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	// Single-use, time-boxed password reset token. Both fields are nil when no
	// reset is pending.
	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	AuditFields
}
