// Package auth issues, refreshes and revokes access tokens.
package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	apperrors "clinic/internal/errors"
	"clinic/internal/models"
	"clinic/internal/utils"
	"clinic/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) error
	IncrementTokenVersion(ctx context.Context, userID uuid.UUID) error
}

// SessionStore remembers revoked token ids until they expire.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Service interface {
	Login(ctx context.Context, email, password string) (*models.User, *utils.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*utils.TokenPair, error)
	Logout(ctx context.Context, claims *models.UserClaims) error
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

type service struct {
	users    UserRepository
	sessions SessionStore
	tokens   utils.TokenConfig
	log      *zap.Logger
}

func NewService(users UserRepository, sessions SessionStore, tokens utils.TokenConfig, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		log:      log.Named("auth"),
	}
}

func (s *service) Login(ctx context.Context, email, password string) (*models.User, *utils.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, apperrors.ErrNotFound) {
			s.log.Info("login failed: unknown email")
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.log.Info("login failed: incorrect password", zap.String("user_id", user.ID.String()))
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	pair, err := s.issue(user)
	if err != nil {
		return nil, nil, err
	}
	s.log.Info("user logged in", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))
	return user, pair, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	_, claims, err := utils.ParseToken(refreshToken, s.tokens.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", apperrors.ErrUnauthorized)
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, fmt.Errorf("%w: refresh token revoked", apperrors.ErrUnauthorized)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if stderrors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, fmt.Errorf("%w: token version mismatch", apperrors.ErrUnauthorized)
	}

	// Refresh tokens are single use.
	if err := s.sessions.Revoke(ctx, claims.ID, utils.RemainingTTL(claims)); err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *service) Logout(ctx context.Context, claims *models.UserClaims) error {
	if err := s.sessions.Revoke(ctx, claims.ID, utils.RemainingTTL(claims)); err != nil {
		return err
	}
	if err := s.users.IncrementTokenVersion(ctx, claims.UserID); err != nil {
		return err
	}
	s.log.Info("user logged out", zap.String("user_id", claims.UserID.String()))
	return nil
}

func (s *service) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return apperrors.ErrInvalidCredentials
	}

	v := validation.New()
	CheckPassword(v, "new_password", newPassword)
	if err := v.Err(); err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	s.log.Info("password changed", zap.String("user_id", userID.String()))
	return nil
}

func (s *service) issue(user *models.User) (*utils.TokenPair, error) {
	return utils.GenerateTokens(s.tokens, &models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		ClinicID:     user.ClinicKey(),
		Permissions:  models.GetDefaultPermissions(user.Role),
		TokenVersion: user.TokenVersion,
	})
}

// HashPassword hashes a password with bcrypt's default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword records password strength problems on v.
func CheckPassword(v *validation.Validator, field, password string) {
	v.MinLength(field, password, MinPasswordLength)
	v.MaxLength(field, password, 72)
	v.Check(strings.TrimSpace(password) == password, field, "must not start or end with whitespace")
}
