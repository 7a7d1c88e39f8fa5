// Package middleware provides HTTP middleware components for the application.
// It includes authentication and authorization middleware for the fiber web framework.
package middleware

import (
	"context"
	"strings"

	"clinic/internal/models"
	"clinic/internal/utils"
	"clinic/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RevocationChecker reports whether a token id has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// UserLookup loads the current user to compare token versions.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AuthMiddleware handles JWT token validation and user authentication.
// It extracts the JWT token from the Authorization header, validates it,
// and adds the user claims and caller identity to the request context.
type AuthMiddleware struct {
	secret   string
	sessions RevocationChecker
	users    UserLookup
	log      *zap.Logger
}

func NewAuthMiddleware(secret string, sessions RevocationChecker, users UserLookup, log *zap.Logger) *AuthMiddleware {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthMiddleware{
		secret:   secret,
		sessions: sessions,
		users:    users,
		log:      log.Named("auth_middleware"),
	}
}

// Handler validates JWT tokens and adds claims to the request context.
// It checks for:
// - Presence of Authorization header with Bearer token
// - Valid JWT signature and expiry
// - Token id not revoked
// - Token version matches current user version
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return response.Error(c, fiber.StatusUnauthorized, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Error(c, fiber.StatusUnauthorized, "invalid authorization format")
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

	_, claims, err := utils.ParseToken(tokenString, m.secret)
	if err != nil {
		m.log.Debug("token validation failed", zap.Error(err))
		return response.Error(c, fiber.StatusUnauthorized, "invalid token")
	}

	ctx := c.UserContext()
	revoked, err := m.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		m.log.Error("revocation check failed", zap.Error(err))
		return response.ServerError(c, "internal server error")
	}
	if revoked {
		return response.Error(c, fiber.StatusUnauthorized, "session expired")
	}

	user, err := m.users.GetByID(ctx, claims.UserID)
	if err != nil {
		m.log.Info("user from token not found", zap.String("user_id", claims.UserID.String()))
		return response.Error(c, fiber.StatusUnauthorized, "invalid token")
	}
	if user.TokenVersion != claims.TokenVersion {
		m.log.Info("token version mismatch",
			zap.String("user_id", claims.UserID.String()),
			zap.Int("token_version", claims.TokenVersion),
			zap.Int("current_version", user.TokenVersion))
		return response.Error(c, fiber.StatusUnauthorized, "session expired")
	}

	c.Locals("claims", claims)
	c.Locals("caller", claims.Caller())
	c.Locals("userID", claims.UserID)

	return c.Next()
}

// HasPermission returns a middleware that checks for a specific permission.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.GetUserClaims(c)
		if err != nil {
			return response.Unauthorized(c)
		}
		if claims.Role.IsSuperAdmin() || claims.HasPermission(permission) {
			return c.Next()
		}
		return response.Error(c, fiber.StatusForbidden, "Insufficient permissions")
	}
}

// RequireSuperAdmin allows only super admins through.
func RequireSuperAdmin(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	if !claims.Role.IsSuperAdmin() {
		return response.Error(c, fiber.StatusForbidden, "Insufficient permissions")
	}
	return c.Next()
}
