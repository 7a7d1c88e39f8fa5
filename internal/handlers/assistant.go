package handlers

import (
	"clinic/internal/models"
	"clinic/internal/services/assistant"
	"clinic/internal/utils/pagination"
	"clinic/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AssistantHandler struct {
	base
	service assistant.Service
}

func NewAssistantHandler(service assistant.Service, log *zap.Logger) *AssistantHandler {
	return &AssistantHandler{base: newBase(log, "assistant_handler"), service: service}
}

type statusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func (h *AssistantHandler) CreateAssistant(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	var input assistant.CreateInput
	if err := parseBody(c, &input); err != nil {
		return h.fail(c, err)
	}

	view, err := h.service.Create(c.UserContext(), caller, input)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Created(c, "Assistant created", view)
}

func (h *AssistantHandler) GetAssistant(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err)
	}

	view, err := h.service.Get(c.UserContext(), caller, id, wantsClinic(c))
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Assistant retrieved", view)
}

// ListAssistants handles GET /assistants?search=&is_active=&branch_id=&employment_type=
func (h *AssistantHandler) ListAssistants(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	isActive, err := boolQuery(c, "is_active")
	if err != nil {
		return h.fail(c, err)
	}
	p := pagination.ParseFromRequest(c)

	views, total, err := h.service.List(c.UserContext(), caller, assistant.ListFilter{
		ClinicID:       c.Query("clinic_id"),
		Search:         c.Query("search"),
		IsActive:       isActive,
		BranchID:       c.Query("branch_id"),
		EmploymentType: models.EmploymentType(c.Query("employment_type")),
		Sort:           c.Query("sort"),
		Offset:         p.Offset,
		Limit:          p.Limit,
		PopulateClinic: wantsClinic(c),
	})
	if err != nil {
		return h.fail(c, err)
	}
	p.Total = total
	return c.JSON(pagination.Response(p, views))
}

func (h *AssistantHandler) UpdateAssistant(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err)
	}
	var input assistant.UpdateInput
	if err := parseBody(c, &input); err != nil {
		return h.fail(c, err)
	}

	view, err := h.service.Update(c.UserContext(), caller, id, input)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Assistant updated", view)
}

// SetAssistantStatus handles PATCH /assistants/:id/status
func (h *AssistantHandler) SetAssistantStatus(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err)
	}
	var input statusRequest
	if err := parseBody(c, &input); err != nil {
		return h.fail(c, err)
	}

	view, err := h.service.SetStatus(c.UserContext(), caller, id, *input.IsActive)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Assistant status updated", view)
}

func (h *AssistantHandler) DeleteAssistant(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.service.Delete(c.UserContext(), caller, id); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
