package handlers

import (
	"context"
	"time"

	"clinic/internal/config"
	apperrors "clinic/internal/errors"
	"clinic/internal/models"
	"clinic/internal/services/auth"
	"clinic/internal/utils"
	"clinic/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

// UserLookup loads the profile returned by /auth/me.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type AuthHandler struct {
	base
	authService auth.Service
	users       UserLookup
}

func NewAuthHandler(authService auth.Service, users UserLookup, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		base:        newBase(log, "auth_handler"),
		authService: authService,
		users:       users,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// LoginUser handles user authentication and returns JWT tokens
func (h *AuthHandler) LoginUser(c *fiber.Ctx) error {
	var input loginRequest
	if err := parseBody(c, &input); err != nil {
		return h.fail(c, err)
	}

	user, tokens, err := h.authService.Login(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return h.fail(c, err)
	}

	h.setAuthCookies(c, tokens)

	return response.Success(c, "Login successful", fiber.Map{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_at":    tokens.AccessExpiresAt,
		"user":          profile(user),
	})
}

// RefreshToken rotates the refresh token taken from the cookie or the body.
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies(refreshCookie)
	if refreshToken == "" {
		var input refreshRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&input); err != nil {
				return h.fail(c, apperrors.ErrUnauthorized)
			}
		}
		refreshToken = input.RefreshToken
	}
	if refreshToken == "" {
		return h.fail(c, apperrors.ErrUnauthorized)
	}

	tokens, err := h.authService.Refresh(c.UserContext(), refreshToken)
	if err != nil {
		return h.fail(c, err)
	}

	h.setAuthCookies(c, tokens)

	return response.Success(c, "Token refreshed", fiber.Map{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_at":    tokens.AccessExpiresAt,
	})
}

// LogoutUser revokes the presented token and every other session of the user.
func (h *AuthHandler) LogoutUser(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return h.fail(c, apperrors.ErrUnauthorized)
	}

	if err := h.authService.Logout(c.UserContext(), claims); err != nil {
		return h.fail(c, err)
	}

	h.clearAuthCookies(c)
	return response.Success(c, "Successfully logged out", nil)
}

// ChangePassword handles password change requests
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return h.fail(c, apperrors.ErrUnauthorized)
	}
	var input changePasswordRequest
	if err := parseBody(c, &input); err != nil {
		return h.fail(c, err)
	}

	if err := h.authService.ChangePassword(c.UserContext(), claims.UserID, input.OldPassword, input.NewPassword); err != nil {
		return h.fail(c, err)
	}

	h.clearAuthCookies(c)
	return response.Success(c, "Password changed successfully", nil)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return h.fail(c, apperrors.ErrUnauthorized)
	}

	user, err := h.users.GetByID(c.UserContext(), claims.UserID)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Profile retrieved", profile(user))
}

func profile(user *models.User) fiber.Map {
	return fiber.Map{
		"id":          user.ID,
		"email":       user.Email,
		"name":        user.Name,
		"role":        user.Role,
		"clinic_id":   user.ClinicID,
		"permissions": models.GetDefaultPermissions(user.Role),
	}
}

func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, tokens *utils.TokenPair) {
	c.Cookie(&fiber.Cookie{
		Name:     accessCookie,
		Value:    tokens.AccessToken,
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		Path:     "/",
		SameSite: "Strict",
		Expires:  tokens.AccessExpiresAt,
	})

	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    tokens.RefreshToken,
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		Path:     "/api/auth",
		SameSite: "Strict",
		Expires:  tokens.RefreshExpiresAt,
	})
}

func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	for name, path := range map[string]string{accessCookie: "/", refreshCookie: "/api/auth"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Secure:   config.IsProduction(),
			Path:     path,
		})
	}
}
