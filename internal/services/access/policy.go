// Package access decides whether a caller may act on clinic-owned records.
package access

import (
	"context"
	"fmt"

	apperrors "clinic/internal/errors"
	"clinic/internal/models"
	"clinic/internal/validation"

	"github.com/google/uuid"
)

// CanAccess reports whether a caller with role and clinic may touch a record
// owned by resourceClinicID. Super admins may touch every clinic.
func CanAccess(role models.Role, callerClinicID, resourceClinicID string) bool {
	if role.IsSuperAdmin() {
		return true
	}
	caller := models.CanonicalClinicID(callerClinicID)
	if caller == "" {
		return false
	}
	return caller == models.CanonicalClinicID(resourceClinicID)
}

// Authorize returns ErrForbidden when the caller may not act on a record owned
// by clinic. Load the record first so a missing id reports not found.
func Authorize(caller models.Caller, clinic models.ClinicRef) error {
	if CanAccess(caller.Role, caller.ClinicID, clinic.ID) {
		return nil
	}
	return apperrors.ErrForbidden
}

// ScopeCreate picks the clinic a new record is created under. Non super admins
// always create in their own clinic, whatever they asked for.
func ScopeCreate(caller models.Caller, requestedClinicID string) (string, error) {
	if !caller.IsSuperAdmin() {
		if models.CanonicalClinicID(caller.ClinicID) == "" {
			return "", apperrors.ErrForbidden
		}
		return models.CanonicalClinicID(caller.ClinicID), nil
	}

	clinicID := models.CanonicalClinicID(requestedClinicID)
	if clinicID == "" {
		return "", fmt.Errorf("%w: clinic_id is required", apperrors.ErrValidation)
	}
	return clinicID, nil
}

// ScopeFilter picks the clinic filter for a list query. Non super admins are
// pinned to their own clinic and refused without one; super admins keep what
// they asked for, empty meaning every clinic.
func ScopeFilter(caller models.Caller, requestedClinicID string) (string, error) {
	if !caller.IsSuperAdmin() {
		own := models.CanonicalClinicID(caller.ClinicID)
		if own == "" {
			return "", apperrors.ErrForbidden
		}
		return own, nil
	}

	requested := models.CanonicalClinicID(requestedClinicID)
	if requested == "" {
		return "", nil
	}
	id, err := ClinicUUID(requested)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ClinicFinder loads clinics by id, keyed by canonical id.
type ClinicFinder interface {
	Resolve(ctx context.Context, ids []uuid.UUID) (map[string]models.Clinic, error)
}

// RequireClinic fails with a clinic_id validation error when id names no
// stored clinic.
func RequireClinic(ctx context.Context, clinics ClinicFinder, id uuid.UUID) error {
	found, err := clinics.Resolve(ctx, []uuid.UUID{id})
	if err != nil {
		return err
	}
	if _, ok := found[models.CanonicalClinicID(id.String())]; !ok {
		return validation.Field("clinic_id", "clinic does not exist")
	}
	return nil
}

// ClinicUUID parses a scoped clinic id for persistence.
func ClinicUUID(clinicID string) (uuid.UUID, error) {
	id, err := uuid.Parse(clinicID)
	if err != nil {
		return uuid.Nil, validation.Field("clinic_id", "must be a valid UUID")
	}
	return id, nil
}
