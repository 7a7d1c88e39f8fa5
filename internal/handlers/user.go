package handlers

import (
	"clinic/internal/services/user"
	"clinic/internal/utils/pagination"
	"clinic/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserHandler struct {
	base
	service user.Service
}

func NewUserHandler(service user.Service, log *zap.Logger) *UserHandler {
	return &UserHandler{base: newBase(log, "user_handler"), service: service}
}

// CreateUser registers a staff account. Only administrators reach this route.
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	var input user.CreateInput
	if err := parseBody(c, &input); err != nil {
		return h.fail(c, err)
	}

	created, err := h.service.Create(c.UserContext(), caller, input)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Created(c, "User created", created)
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err)
	}

	found, err := h.service.GetByID(c.UserContext(), caller, id)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "User retrieved", found)
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	p := pagination.ParseFromRequest(c)

	users, total, err := h.service.List(c.UserContext(), caller, listQuery(c, p))
	if err != nil {
		return h.fail(c, err)
	}
	p.Total = total
	return c.JSON(pagination.Response(p, users))
}
