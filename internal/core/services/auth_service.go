package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bankpro/bankpro_backend/internal/apperrors"
	"github.com/bankpro/bankpro_backend/internal/core/domain"
	portsrepo "github.com/bankpro/bankpro_backend/internal/core/ports/repositories"
	portssvc "github.com/bankpro/bankpro_backend/internal/core/ports/services"
	"github.com/bankpro/bankpro_backend/internal/dto"
	"github.com/bankpro/bankpro_backend/internal/middleware"
	"github.com/bankpro/bankpro_backend/internal/platform/mailer"
	"github.com/bankpro/bankpro_backend/internal/utils"
	"github.com/bankpro/bankpro_backend/pkg/config"
)

// ErrInvalidCredentials is returned for a bad email/password pair. It is
// deliberately indistinguishable between the two cases.
var ErrInvalidCredentials = apperrors.NewAppError(http.StatusUnauthorized, "invalid email or password", nil)

// authService authenticates users and drives the password recovery flow.
type authService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepository
	mail     mailer.Mailer
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepository, mail mailer.Mailer) portssvc.AuthSvcFacade {
	return &authService{
		cfg:      cfg,
		userRepo: userRepo,
		mail:     mail,
	}
}

// Ensure authService implements the portssvc.AuthSvcFacade interface
var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies credentials and returns a signed JWT plus the user.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to load user for login: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Login failed, password mismatch", slog.String("email", email))
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	return token, user, nil
}

func (s *authService) generateToken(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := middleware.AuthClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			Issuer:    s.cfg.JWTIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiryDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ForgotPassword issues a single-use reset token and mails it to the user.
// An unknown email is reported as success so the endpoint cannot be used to
// probe which addresses exist.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Info("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to load user for password reset: %w", err)
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	now := time.Now().UTC()
	expiry := now.Add(s.cfg.ResetTokenExpiryDuration)
	if err := s.userRepo.UpdateResetToken(ctx, user.UserID, &token, &expiry, now); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.mail.SendPasswordReset(ctx, user.Email, token); err != nil {
		return fmt.Errorf("failed to send reset mail: %w", err)
	}

	logger.Info("Password reset token issued", slog.String("user_id", user.UserID))
	return nil
}

// ResetPassword consumes a reset token and sets the new password. The token
// is single use: storing the new hash clears it.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	user, err := s.userRepo.FindUserByResetToken(ctx, token, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewAppError(http.StatusBadRequest, "invalid or expired reset token", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.UserID, hash, now); err != nil {
		return fmt.Errorf("failed to store new password: %w", err)
	}

	logger.Info("Password reset completed", slog.String("user_id", user.UserID))
	return nil
}

// ValidateToken parses a JWT and returns the user ID and role claims.
func (s *authService) ValidateToken(tokenString string) (string, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &middleware.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(*middleware.AuthClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token claims")
	}
	return claims.Subject, claims.Role, nil
}
