package access

import (
	"context"
	stderrors "errors"
	"testing"

	apperrors "clinic/internal/errors"
	"clinic/internal/models"
	"clinic/internal/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	clinicA = "5d2c7b0e-3c5f-4a57-9d8e-0a8f6b7c1e01"
	clinicB = "9a1e4f6b-2d3c-4b5a-8e7f-1c2d3e4f5a02"
)

func TestCanAccess_SuperAdminAlwaysAllowed(t *testing.T) {
	pairs := [][2]string{{clinicA, clinicA}, {clinicA, clinicB}, {"", clinicB}, {"anything", ""}}
	for _, p := range pairs {
		assert.True(t, CanAccess(models.RoleSuperAdmin, p[0], p[1]), "%v", p)
	}
}

func TestCanAccess_OtherRolesMatchClinic(t *testing.T) {
	assert.True(t, CanAccess(models.RoleStaff, "clinicA", "clinicA"))
	assert.False(t, CanAccess(models.RoleStaff, "clinicA", "clinicB"))
	assert.True(t, CanAccess(models.RoleClinicAdmin, clinicA, clinicA))
	assert.False(t, CanAccess(models.RoleClinicAdmin, clinicA, clinicB))
}

func TestCanAccess_NormalizesRepresentation(t *testing.T) {
	upperBraced := "{5D2C7B0E-3C5F-4A57-9D8E-0A8F6B7C1E01}"
	urn := "urn:uuid:" + clinicA

	assert.True(t, CanAccess(models.RoleStaff, clinicA, upperBraced))
	assert.True(t, CanAccess(models.RoleStaff, urn, clinicA))
	assert.True(t, CanAccess(models.RoleStaff, " ClinicA ", "ClinicA"))
}

func TestCanAccess_NonUUIDComparedExactly(t *testing.T) {
	assert.False(t, CanAccess(models.RoleStaff, "ClinicA", "clinica"))
	assert.False(t, CanAccess(models.RoleClinicAdmin, "clinic-a", "CLINIC-A"))
	assert.True(t, CanAccess(models.RoleStaff, "clinic-a", "clinic-a"))
}

func TestCanAccess_EmptyCallerClinicDenied(t *testing.T) {
	assert.False(t, CanAccess(models.RoleStaff, "", ""))
	assert.False(t, CanAccess(models.RoleStaff, "", clinicA))
}

func TestAuthorize(t *testing.T) {
	staff := models.Caller{Role: models.RoleStaff, ClinicID: clinicA}

	assert.NoError(t, Authorize(staff, models.UnresolvedClinic(clinicA)))
	assert.NoError(t, Authorize(staff, models.ResolvedClinic(clinicA, "North")))

	err := Authorize(staff, models.UnresolvedClinic(clinicB))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, apperrors.ErrForbidden))
	assert.NotContains(t, err.Error(), clinicB)
}

func TestScopeCreate(t *testing.T) {
	staff := models.Caller{Role: models.RoleStaff, ClinicID: clinicA}
	admin := models.Caller{Role: models.RoleSuperAdmin}

	got, err := ScopeCreate(staff, clinicB)
	require.NoError(t, err)
	assert.Equal(t, clinicA, got)

	got, err = ScopeCreate(staff, "")
	require.NoError(t, err)
	assert.Equal(t, clinicA, got)

	got, err = ScopeCreate(admin, clinicB)
	require.NoError(t, err)
	assert.Equal(t, clinicB, got)

	_, err = ScopeCreate(admin, "")
	assert.True(t, stderrors.Is(err, apperrors.ErrValidation))

	_, err = ScopeCreate(models.Caller{Role: models.RoleStaff}, clinicA)
	assert.True(t, stderrors.Is(err, apperrors.ErrForbidden))
}

func TestScopeFilter(t *testing.T) {
	staff := models.Caller{Role: models.RoleStaff, ClinicID: clinicA}
	admin := models.Caller{Role: models.RoleSuperAdmin}

	got, err := ScopeFilter(staff, clinicB)
	require.NoError(t, err)
	assert.Equal(t, clinicA, got)

	got, err = ScopeFilter(staff, "")
	require.NoError(t, err)
	assert.Equal(t, clinicA, got)

	got, err = ScopeFilter(admin, clinicB)
	require.NoError(t, err)
	assert.Equal(t, clinicB, got)

	got, err = ScopeFilter(admin, "{9A1E4F6B-2D3C-4B5A-8E7F-1C2D3E4F5A02}")
	require.NoError(t, err)
	assert.Equal(t, clinicB, got)

	got, err = ScopeFilter(admin, "")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestScopeFilter_CallerWithoutClinicForbidden(t *testing.T) {
	for _, role := range []models.Role{models.RoleStaff, models.RoleClinicAdmin} {
		got, err := ScopeFilter(models.Caller{Role: role}, "")
		assert.True(t, stderrors.Is(err, apperrors.ErrForbidden), role)
		assert.Empty(t, got)

		_, err = ScopeFilter(models.Caller{Role: role, ClinicID: "   "}, clinicA)
		assert.True(t, stderrors.Is(err, apperrors.ErrForbidden), role)
	}
}

func TestScopeFilter_SuperAdminRejectsMalformedClinic(t *testing.T) {
	_, err := ScopeFilter(models.Caller{Role: models.RoleSuperAdmin}, "not-a-uuid")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, apperrors.ErrValidation))
}

func TestClinicUUID(t *testing.T) {
	id, err := ClinicUUID(clinicA)
	require.NoError(t, err)
	assert.Equal(t, clinicA, id.String())

	_, err = ClinicUUID("clinic-a")
	assert.True(t, stderrors.Is(err, apperrors.ErrValidation))
}

type stubClinics map[string]models.Clinic

func (s stubClinics) Resolve(_ context.Context, ids []uuid.UUID) (map[string]models.Clinic, error) {
	out := make(map[string]models.Clinic, len(ids))
	for _, id := range ids {
		if c, ok := s[id.String()]; ok {
			out[id.String()] = c
		}
	}
	return out, nil
}

func TestRequireClinic(t *testing.T) {
	known := uuid.MustParse(clinicA)
	clinics := stubClinics{clinicA: {Base: models.Base{ID: known}, Name: "North"}}

	assert.NoError(t, RequireClinic(context.Background(), clinics, known))

	err := RequireClinic(context.Background(), clinics, uuid.MustParse(clinicB))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, apperrors.ErrValidation))
	var fields validation.Errors
	require.True(t, stderrors.As(err, &fields))
	assert.Contains(t, fields, "clinic_id")
}
