package handlers

import (
	"fmt"
	"time"

	"clinic/internal/services/treatment"
	"clinic/internal/utils/pagination"
	"clinic/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type TreatmentHandler struct {
	base
	service treatment.Service
}

func NewTreatmentHandler(service treatment.Service, log *zap.Logger) *TreatmentHandler {
	return &TreatmentHandler{base: newBase(log, "treatment_handler"), service: service}
}

// CreateTreatment handles POST /treatments
func (h *TreatmentHandler) CreateTreatment(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	var input treatment.CreateInput
	if err := parseBody(c, &input); err != nil {
		return h.fail(c, err)
	}

	view, err := h.service.Create(c.UserContext(), caller, input)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Created(c, "Treatment created", view)
}

// GetTreatment handles GET /treatments/:id?calculate=true&populate=clinic
func (h *TreatmentHandler) GetTreatment(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err)
	}
	calculate, err := boolQuery(c, "calculate")
	if err != nil {
		return h.fail(c, err)
	}

	view, err := h.service.Get(c.UserContext(), caller, id, treatment.ViewOptions{
		WithCalculations: calculate != nil && *calculate,
		PopulateClinic:   wantsClinic(c),
	})
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Treatment retrieved", view)
}

// ListTreatments handles GET /treatments
func (h *TreatmentHandler) ListTreatments(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	filter, p, err := treatmentFilter(c)
	if err != nil {
		return h.fail(c, err)
	}

	views, total, err := h.service.List(c.UserContext(), caller, filter)
	if err != nil {
		return h.fail(c, err)
	}
	p.Total = total
	return c.JSON(pagination.Response(p, views))
}

// UpdateTreatment handles PATCH /treatments/:id
func (h *TreatmentHandler) UpdateTreatment(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err)
	}
	var input treatment.UpdateInput
	if err := parseBody(c, &input); err != nil {
		return h.fail(c, err)
	}

	view, err := h.service.Update(c.UserContext(), caller, id, input)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Treatment updated", view)
}

// DeleteTreatment handles DELETE /treatments/:id
func (h *TreatmentHandler) DeleteTreatment(c *fiber.Ctx) error {
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

// PreviewFees handles POST /treatments/:id/calculate with optional overrides
func (h *TreatmentHandler) PreviewFees(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err)
	}
	var override treatment.FeeOverride
	if len(c.Body()) > 0 {
		if err := parseBody(c, &override); err != nil {
			return h.fail(c, err)
		}
	}

	calc, err := h.service.PreviewFees(c.UserContext(), caller, id, override)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Fees calculated", calc)
}

// Calculate handles POST /treatments/calculate for unsaved input
func (h *TreatmentHandler) Calculate(c *fiber.Ctx) error {
	var input treatment.CalculateInput
	if err := parseBody(c, &input); err != nil {
		return h.fail(c, err)
	}

	calc, err := h.service.Calculate(input)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Fees calculated", calc)
}

// ExportTreatments handles GET /treatments/export
func (h *TreatmentHandler) ExportTreatments(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	filter, _, err := treatmentFilter(c)
	if err != nil {
		return h.fail(c, err)
	}

	data, err := h.service.Export(c.UserContext(), caller, filter)
	if err != nil {
		return h.fail(c, err)
	}

	filename := fmt.Sprintf("treatments_%s.xlsx", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func treatmentFilter(c *fiber.Ctx) (treatment.ListFilter, pagination.Pagination, error) {
	p := pagination.ParseFromRequest(c)
	includeVat, err := boolQuery(c, "include_vat")
	if err != nil {
		return treatment.ListFilter{}, p, err
	}
	calculate, err := boolQuery(c, "calculate")
	if err != nil {
		return treatment.ListFilter{}, p, err
	}

	return treatment.ListFilter{
		ViewOptions: treatment.ViewOptions{
			WithCalculations: calculate != nil && *calculate,
			PopulateClinic:   wantsClinic(c),
		},
		ClinicID:   c.Query("clinic_id"),
		Name:       c.Query("name"),
		IncludeVat: includeVat,
		Sort:       c.Query("sort"),
		Offset:     p.Offset,
		Limit:      p.Limit,
	}, p, nil
}
