package handlers

import (
	"clinic/internal/services/clinic"
	"clinic/internal/utils/pagination"
	"clinic/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ClinicHandler struct {
	base
	service clinic.Service
}

func NewClinicHandler(service clinic.Service, log *zap.Logger) *ClinicHandler {
	return &ClinicHandler{base: newBase(log, "clinic_handler"), service: service}
}

func (h *ClinicHandler) CreateClinic(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	var input clinic.CreateInput
	if err := parseBody(c, &input); err != nil {
		return h.fail(c, err)
	}

	created, err := h.service.Create(c.UserContext(), caller, input)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Created(c, "Clinic created", created)
}

func (h *ClinicHandler) GetClinic(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err)
	}

	found, err := h.service.Get(c.UserContext(), caller, id)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Clinic retrieved", found)
}

func (h *ClinicHandler) ListClinics(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	p := pagination.ParseFromRequest(c)

	clinics, total, err := h.service.List(c.UserContext(), caller, listQuery(c, p))
	if err != nil {
		return h.fail(c, err)
	}
	p.Total = total
	return c.JSON(pagination.Response(p, clinics))
}
