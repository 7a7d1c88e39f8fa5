package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"clinic/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	testClinicID = uuid.MustParse("6f1c2d8e-4b7a-4e0f-9a51-3c2b1d0e9f11")
	testUserID   = uuid.MustParse("0a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d")
)

func adminClaims() *models.UserClaims {
	return &models.UserClaims{
		UserID:      testUserID,
		Email:       "admin@clinic.test",
		Role:        models.RoleClinicAdmin,
		ClinicID:    testClinicID.String(),
		Permissions: models.GetDefaultPermissions(models.RoleClinicAdmin),
	}
}

// withClaims stands in for the auth middleware.
func withClaims(claims *models.UserClaims) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims != nil {
			c.Locals("claims", claims)
		}
		return c.Next()
	}
}

func newTestApp(claims *models.UserClaims) *fiber.App {
	app := fiber.New()
	app.Use(withClaims(claims))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}
