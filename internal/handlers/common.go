package handlers

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "clinic/internal/errors"
	"clinic/internal/models"
	"clinic/internal/utils"
	"clinic/internal/utils/response"
	"clinic/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// base holds what every handler needs to report failures.
type base struct {
	log *zap.Logger
}

func newBase(log *zap.Logger, name string) base {
	if log == nil {
		log = zap.NewNop()
	}
	return base{log: log.Named(name)}
}

// fail writes err to the client and logs anything that is not a domain error.
func (b base) fail(c *fiber.Ctx, err error) error {
	if apperrors.StatusOf(err) >= fiber.StatusInternalServerError {
		b.log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
	}
	return response.FromError(c, err)
}

// parseBody decodes the JSON body into dst and checks its validate tags.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: invalid request body", apperrors.ErrValidation)
	}
	return validation.Struct(dst)
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, validation.Field("id", "must be a valid UUID")
	}
	return id, nil
}

func callerFrom(c *fiber.Ctx) (models.Caller, error) {
	caller, err := utils.GetCaller(c)
	if err != nil {
		return models.Caller{}, apperrors.ErrUnauthorized
	}
	return caller, nil
}

// boolQuery reads an optional boolean query parameter.
func boolQuery(c *fiber.Ctx, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, validation.Field(key, "must be true or false")
	}
	return &v, nil
}

// wantsClinic reports whether ?populate= names the clinic relation.
func wantsClinic(c *fiber.Ctx) bool {
	for _, p := range strings.Split(c.Query("populate"), ",") {
		if strings.EqualFold(strings.TrimSpace(p), "clinic") {
			return true
		}
	}
	return false
}
