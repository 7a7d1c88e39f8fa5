package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "clinic/internal/errors"
	"clinic/internal/models"
	"clinic/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	revoked map[string]bool
}

func (f *fakeSessions) IsRevoked(_ context.Context, id string) (bool, error) {
	return f.revoked[id], nil
}

type fakeUsers struct {
	users map[uuid.UUID]*models.User
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrNotFound
}

var tokenCfg = utils.TokenConfig{
	AccessSecret:  "access",
	RefreshSecret: "refresh",
	AccessTTL:     time.Minute,
	RefreshTTL:    time.Hour,
}

func issue(t *testing.T, user *models.User) (string, *models.UserClaims) {
	t.Helper()
	pair, err := utils.GenerateTokens(tokenCfg, &models.UserClaims{
		UserID:       user.ID,
		Role:         user.Role,
		ClinicID:     user.ClinicKey(),
		Permissions:  models.GetDefaultPermissions(user.Role),
		TokenVersion: user.TokenVersion,
	})
	require.NoError(t, err)
	_, claims, err := utils.ParseToken(pair.AccessToken, tokenCfg.AccessSecret)
	require.NoError(t, err)
	return pair.AccessToken, claims
}

func setupApp(sessions *fakeSessions, users *fakeUsers, extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	mw := NewAuthMiddleware(tokenCfg.AccessSecret, sessions, users, nil)
	handlers := append([]fiber.Handler{mw.Handler}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		caller := c.Locals("caller").(models.Caller)
		return c.SendString(string(caller.Role) + "|" + caller.ClinicID)
	})
	app.Get("/protected", handlers...)
	return app
}

func request(t *testing.T, app *fiber.App, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthMiddleware(t *testing.T) {
	clinicID := uuid.New()
	staff := &models.User{Base: models.Base{ID: uuid.New()}, Role: models.RoleStaff, ClinicID: &clinicID, TokenVersion: 1}
	users := &fakeUsers{users: map[uuid.UUID]*models.User{staff.ID: staff}}

	t.Run("valid token", func(t *testing.T) {
		token, _ := issue(t, staff)
		app := setupApp(&fakeSessions{}, users)
		assert.Equal(t, fiber.StatusOK, request(t, app, token))
	})

	t.Run("missing header", func(t *testing.T) {
		app := setupApp(&fakeSessions{}, users)
		assert.Equal(t, fiber.StatusUnauthorized, request(t, app, ""))
	})

	t.Run("garbage token", func(t *testing.T) {
		app := setupApp(&fakeSessions{}, users)
		assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "not-a-jwt"))
	})

	t.Run("revoked token", func(t *testing.T) {
		token, claims := issue(t, staff)
		app := setupApp(&fakeSessions{revoked: map[string]bool{claims.ID: true}}, users)
		assert.Equal(t, fiber.StatusUnauthorized, request(t, app, token))
	})

	t.Run("stale token version", func(t *testing.T) {
		token, _ := issue(t, staff)
		bumped := *staff
		bumped.TokenVersion = 2
		app := setupApp(&fakeSessions{}, &fakeUsers{users: map[uuid.UUID]*models.User{staff.ID: &bumped}})
		assert.Equal(t, fiber.StatusUnauthorized, request(t, app, token))
	})
}

func TestHasPermission(t *testing.T) {
	clinicID := uuid.New()
	staff := &models.User{Base: models.Base{ID: uuid.New()}, Role: models.RoleStaff, ClinicID: &clinicID, TokenVersion: 1}
	root := &models.User{Base: models.Base{ID: uuid.New()}, Role: models.RoleSuperAdmin, TokenVersion: 1}
	users := &fakeUsers{users: map[uuid.UUID]*models.User{staff.ID: staff, root.ID: root}}

	app := setupApp(&fakeSessions{}, users, HasPermission(models.PermissionTreatmentWrite))

	staffToken, _ := issue(t, staff)
	assert.Equal(t, fiber.StatusForbidden, request(t, app, staffToken))

	rootToken, _ := issue(t, root)
	assert.Equal(t, fiber.StatusOK, request(t, app, rootToken))

	adminOnly := setupApp(&fakeSessions{}, users, RequireSuperAdmin)
	assert.Equal(t, fiber.StatusForbidden, request(t, adminOnly, staffToken))
	assert.Equal(t, fiber.StatusOK, request(t, adminOnly, rootToken))
}
