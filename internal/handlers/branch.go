package handlers

import (
	"clinic/internal/repositories"
	"clinic/internal/services/branch"
	"clinic/internal/utils/pagination"
	"clinic/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BranchHandler struct {
	base
	service branch.Service
}

func NewBranchHandler(service branch.Service, log *zap.Logger) *BranchHandler {
	return &BranchHandler{base: newBase(log, "branch_handler"), service: service}
}

func (h *BranchHandler) CreateBranch(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	var input branch.CreateInput
	if err := parseBody(c, &input); err != nil {
		return h.fail(c, err)
	}

	b, err := h.service.Create(c.UserContext(), caller, input)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Created(c, "Branch created", b)
}

func (h *BranchHandler) ListBranches(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return h.fail(c, err)
	}
	p := pagination.ParseFromRequest(c)

	branches, total, err := h.service.List(c.UserContext(), caller, listQuery(c, p))
	if err != nil {
		return h.fail(c, err)
	}
	p.Total = total
	return c.JSON(pagination.Response(p, branches))
}

// listQuery builds the generic listing query shared by the simple resources.
func listQuery(c *fiber.Ctx, p pagination.Pagination) repositories.ListQuery {
	return repositories.ListQuery{
		ClinicID: c.Query("clinic_id"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Offset:   p.Offset,
		Limit:    p.Limit,
	}
}
