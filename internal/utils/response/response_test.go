package response

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	apperrors "clinic/internal/errors"
	"clinic/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return FromError(c, err) })

	resp, e := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, e)
	body, _ := io.ReadAll(resp.Body)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestFromError(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		status, body := render(t, fmt.Errorf("%w: treatment x", apperrors.ErrNotFound))
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, "NOT_FOUND", body["code"])
	})

	t.Run("forbidden hides detail", func(t *testing.T) {
		status, body := render(t, fmt.Errorf("%w: clinic mismatch", apperrors.ErrForbidden))
		assert.Equal(t, fiber.StatusForbidden, status)
		assert.Equal(t, apperrors.ErrForbidden.Message, body["error"])
	})

	t.Run("validation fields", func(t *testing.T) {
		status, body := render(t, validation.Errors{"price": "must not be negative"})
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "VALIDATION_FAILED", body["code"])
		assert.Equal(t, map[string]interface{}{"price": "must not be negative"}, body["fields"])
	})

	t.Run("unknown error is opaque", func(t *testing.T) {
		status, body := render(t, stderrors.New("pq: connection refused"))
		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Equal(t, "internal server error", body["error"])
	})
}
