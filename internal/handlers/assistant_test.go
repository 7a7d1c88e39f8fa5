package handlers

import (
	"context"
	"testing"

	"clinic/internal/models"
	"clinic/internal/services/assistant"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAssistantService struct {
	mock.Mock
}

func (m *MockAssistantService) Create(ctx context.Context, caller models.Caller, in assistant.CreateInput) (*assistant.View, error) {
	args := m.Called(ctx, caller, in)
	if v := args.Get(0); v != nil {
		return v.(*assistant.View), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssistantService) Get(ctx context.Context, caller models.Caller, id uuid.UUID, populateClinic bool) (*assistant.View, error) {
	args := m.Called(ctx, caller, id, populateClinic)
	if v := args.Get(0); v != nil {
		return v.(*assistant.View), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssistantService) List(ctx context.Context, caller models.Caller, f assistant.ListFilter) ([]assistant.View, int64, error) {
	args := m.Called(ctx, caller, f)
	return args.Get(0).([]assistant.View), args.Get(1).(int64), args.Error(2)
}

func (m *MockAssistantService) Update(ctx context.Context, caller models.Caller, id uuid.UUID, in assistant.UpdateInput) (*assistant.View, error) {
	args := m.Called(ctx, caller, id, in)
	if v := args.Get(0); v != nil {
		return v.(*assistant.View), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssistantService) Delete(ctx context.Context, caller models.Caller, id uuid.UUID) error {
	return m.Called(ctx, caller, id).Error(0)
}

func (m *MockAssistantService) SetStatus(ctx context.Context, caller models.Caller, id uuid.UUID, active bool) (*assistant.View, error) {
	args := m.Called(ctx, caller, id, active)
	if v := args.Get(0); v != nil {
		return v.(*assistant.View), args.Error(1)
	}
	return nil, args.Error(1)
}

func setupAssistantApp(svc assistant.Service, claims *models.UserClaims) *fiber.App {
	h := NewAssistantHandler(svc, nil)
	app := newTestApp(claims)
	g := app.Group("/assistants")
	g.Get("/", h.ListAssistants)
	g.Patch("/:id/status", h.SetAssistantStatus)
	return app
}

func TestAssistantHandler_SetStatus(t *testing.T) {
	claims := adminClaims()
	id := uuid.New()

	t.Run("deactivate", func(t *testing.T) {
		svc := new(MockAssistantService)
		view := &assistant.View{Assistant: models.Assistant{Name: "Ann", IsActive: false}}
		svc.On("SetStatus", mock.Anything, claims.Caller(), id, false).Return(view, nil)

		status, _ := doJSON(t, setupAssistantApp(svc, claims), "PATCH", "/assistants/"+id.String()+"/status",
			fiber.Map{"is_active": false})

		assert.Equal(t, fiber.StatusOK, status)
		svc.AssertExpectations(t)
	})

	t.Run("flag required", func(t *testing.T) {
		svc := new(MockAssistantService)
		status, body := doJSON(t, setupAssistantApp(svc, claims), "PATCH", "/assistants/"+id.String()+"/status",
			fiber.Map{})

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, body["fields"], "is_active")
		svc.AssertNotCalled(t, "SetStatus")
	})
}

func TestAssistantHandler_ListFilters(t *testing.T) {
	claims := adminClaims()
	branchID := uuid.NewString()
	svc := new(MockAssistantService)
	svc.On("List", mock.Anything, claims.Caller(), mock.MatchedBy(func(f assistant.ListFilter) bool {
		return f.Search == "ann" &&
			f.IsActive != nil && *f.IsActive &&
			f.BranchID == branchID &&
			f.EmploymentType == models.EmploymentPartTime &&
			f.PopulateClinic
	})).Return([]assistant.View{}, int64(0), nil)

	status, _ := doJSON(t, setupAssistantApp(svc, claims), "GET",
		"/assistants/?search=ann&is_active=true&employment_type=PART_TIME&populate=clinic&branch_id="+branchID, nil)

	assert.Equal(t, fiber.StatusOK, status)
	svc.AssertExpectations(t)
}
