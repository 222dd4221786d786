package repositories

import (
	"context"
	"time"

	"github.com/bankpro/bankpro_backend/internal/core/domain"
)

// UserRepository defines storage operations for back-office users.
type UserRepository interface {
	// SaveUser inserts a new user. Returns apperrors.ErrDuplicate when the
	// email is already registered.
	SaveUser(ctx context.Context, user domain.User) error

	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByResetToken retrieves the user holding a reset token that has
	// not expired as of now. Returns apperrors.ErrNotFound otherwise.
	FindUserByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error)

	// ListUsers retrieves all users, newest first.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// UpdateResetToken stores or clears (nil, nil) the reset token and expiry.
	UpdateResetToken(ctx context.Context, userID string, token *string, expiry *time.Time, now time.Time) error

	// UpdatePassword replaces the password hash and clears any pending reset
	// token in the same statement so a token can never be replayed.
	UpdatePassword(ctx context.Context, userID string, passwordHash string, now time.Time) error

	DeleteUser(ctx context.Context, userID string) error
}
