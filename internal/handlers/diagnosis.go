package handlers

import (
	"clinic/internal/services/diagnosis"
	"clinic/internal/utils/pagination"
	"clinic/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DiagnosisHandler struct {
	base
	service diagnosis.Service
}

func NewDiagnosisHandler(service diagnosis.Service, log *zap.Logger) *DiagnosisHandler {
	return &DiagnosisHandler{base: newBase(log, "diagnosis_handler"), service: service}
}

func (h *DiagnosisHandler) CreateDiagnosis(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	var input diagnosis.CreateInput
	if err := parseBody(c, &input); err != nil {
		return h.fail(c, err)
	}

	view, err := h.service.Create(c.UserContext(), caller, input)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Created(c, "Diagnosis created", view)
}

func (h *DiagnosisHandler) GetDiagnosis(c *fiber.Ctx) error {
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
	return response.Success(c, "Diagnosis retrieved", view)
}

func (h *DiagnosisHandler) ListDiagnoses(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	p := pagination.ParseFromRequest(c)

	views, total, err := h.service.List(c.UserContext(), caller, diagnosis.ListFilter{
		ClinicID:       c.Query("clinic_id"),
		Name:           c.Query("name"),
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

func (h *DiagnosisHandler) UpdateDiagnosis(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err)
	}
	var input diagnosis.UpdateInput
	if err := parseBody(c, &input); err != nil {
		return h.fail(c, err)
	}

	view, err := h.service.Update(c.UserContext(), caller, id, input)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Diagnosis updated", view)
}

func (h *DiagnosisHandler) DeleteDiagnosis(c *fiber.Ctx) error {
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
