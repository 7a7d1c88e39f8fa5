package clinic

import (
	"context"
	stderrors "errors"
	"testing"

	apperrors "clinic/internal/errors"
	"clinic/internal/models"
	"clinic/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, c *models.Clinic) error {
	c.ID = uuid.New()
	return m.Called(ctx, c).Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Clinic, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Clinic)
	return c, args.Error(1)
}

func (m *MockRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Clinic, error) {
	args := m.Called(ctx, ids)
	c, _ := args.Get(0).([]models.Clinic)
	return c, args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, q repositories.ListQuery) ([]models.Clinic, int64, error) {
	args := m.Called(ctx, q)
	c, _ := args.Get(0).([]models.Clinic)
	return c, args.Get(1).(int64), args.Error(2)
}

func TestService_Create(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), models.Caller{Role: models.RoleClinicAdmin, ClinicID: uuid.NewString()}, CreateInput{Name: "Smile"})
	assert.True(t, stderrors.Is(err, apperrors.ErrForbidden))

	_, err = svc.Create(context.Background(), models.Caller{Role: models.RoleSuperAdmin}, CreateInput{Name: "  "})
	assert.True(t, stderrors.Is(err, apperrors.ErrValidation))

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Clinic")).Return(nil)
	c, err := svc.Create(context.Background(), models.Caller{Role: models.RoleSuperAdmin}, CreateInput{Name: " Smile "})
	require.NoError(t, err)
	assert.Equal(t, "Smile", c.Name)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestService_Get(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&models.Clinic{Base: models.Base{ID: id}, Name: "Smile"}, nil)

	_, err := svc.Get(context.Background(), models.Caller{Role: models.RoleStaff, ClinicID: uuid.NewString()}, id)
	assert.True(t, stderrors.Is(err, apperrors.ErrForbidden))

	c, err := svc.Get(context.Background(), models.Caller{Role: models.RoleStaff, ClinicID: id.String()}, id)
	require.NoError(t, err)
	assert.Equal(t, "Smile", c.Name)
}

func TestService_List_PinsNonAdmins(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)
	own := uuid.NewString()

	repo.On("List", mock.Anything, repositories.ListQuery{ClinicID: own, Limit: 10}).
		Return([]models.Clinic{{Name: "Smile"}}, int64(1), nil)

	items, total, err := svc.List(context.Background(), models.Caller{Role: models.RoleStaff, ClinicID: own}, repositories.ListQuery{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)
}

func TestService_Resolve(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)
	a, b := uuid.New(), uuid.New()

	repo.On("FindByIDs", mock.Anything, []uuid.UUID{a, b}).
		Return([]models.Clinic{{Base: models.Base{ID: a}, Name: "Smile"}}, nil)

	got, err := svc.Resolve(context.Background(), []uuid.UUID{a, b, a})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Smile", got[a.String()].Name)
}
