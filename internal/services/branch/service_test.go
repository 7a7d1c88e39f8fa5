package branch

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

func (m *MockRepository) Create(ctx context.Context, b *models.Branch) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockRepository) List(ctx context.Context, q repositories.ListQuery) ([]models.Branch, int64, error) {
	args := m.Called(ctx, q)
	b, _ := args.Get(0).([]models.Branch)
	return b, args.Get(1).(int64), args.Error(2)
}

type MockClinics struct {
	mock.Mock
}

func (m *MockClinics) Resolve(ctx context.Context, ids []uuid.UUID) (map[string]models.Clinic, error) {
	args := m.Called(ctx, ids)
	c, _ := args.Get(0).(map[string]models.Clinic)
	return c, args.Error(1)
}

func TestService_Create(t *testing.T) {
	own := uuid.New()
	caller := models.Caller{Role: models.RoleClinicAdmin, ClinicID: own.String()}

	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(b *models.Branch) bool {
		return b.ClinicID == own && b.Name == "Silom"
	})).Return(nil)
	svc := NewService(repo, new(MockClinics), nil)

	b, err := svc.Create(context.Background(), caller, CreateInput{Name: " Silom ", ClinicID: uuid.NewString()})
	require.NoError(t, err)
	assert.Equal(t, own, b.ClinicID)

	_, err = svc.Create(context.Background(), caller, CreateInput{})
	assert.True(t, stderrors.Is(err, apperrors.ErrValidation))
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestService_List(t *testing.T) {
	requested := uuid.NewString()
	repo := new(MockRepository)
	repo.On("List", mock.Anything, repositories.ListQuery{ClinicID: requested}).Return([]models.Branch{}, int64(0), nil)
	svc := NewService(repo, new(MockClinics), nil)

	_, _, err := svc.List(context.Background(), models.Caller{Role: models.RoleSuperAdmin}, repositories.ListQuery{ClinicID: requested})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_CreateSuperAdminChecksClinic(t *testing.T) {
	known, missing := uuid.New(), uuid.New()
	super := models.Caller{Role: models.RoleSuperAdmin}

	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Branch")).Return(nil)
	clinics := new(MockClinics)
	clinics.On("Resolve", mock.Anything, []uuid.UUID{known}).
		Return(map[string]models.Clinic{known.String(): {Base: models.Base{ID: known}, Name: "Smile"}}, nil)
	clinics.On("Resolve", mock.Anything, []uuid.UUID{missing}).Return(map[string]models.Clinic{}, nil)
	svc := NewService(repo, clinics, nil)

	b, err := svc.Create(context.Background(), super, CreateInput{Name: "Silom", ClinicID: known.String()})
	require.NoError(t, err)
	assert.Equal(t, known, b.ClinicID)

	_, err = svc.Create(context.Background(), super, CreateInput{Name: "Sathorn", ClinicID: missing.String()})
	assert.True(t, stderrors.Is(err, apperrors.ErrValidation))
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestService_ListScope(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockClinics), nil)

	_, _, err := svc.List(context.Background(), models.Caller{Role: models.RoleStaff}, repositories.ListQuery{})
	assert.True(t, stderrors.Is(err, apperrors.ErrForbidden))

	_, _, err = svc.List(context.Background(), models.Caller{Role: models.RoleSuperAdmin}, repositories.ListQuery{ClinicID: "not-a-uuid"})
	assert.True(t, stderrors.Is(err, apperrors.ErrValidation))

	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
