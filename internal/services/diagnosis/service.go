// Package diagnosis manages the per-clinic diagnosis catalogue.
package diagnosis

import (
	"context"
	"fmt"
	"strings"

	apperrors "clinic/internal/errors"
	"clinic/internal/models"
	"clinic/internal/repositories"
	"clinic/internal/services/access"
	"clinic/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const MaxNameLength = 200

type Repository interface {
	Create(ctx context.Context, d *models.Diagnosis) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Diagnosis, error)
	Update(ctx context.Context, d *models.Diagnosis) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByName(ctx context.Context, clinicID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)
	List(ctx context.Context, q repositories.ListQuery) ([]models.Diagnosis, int64, error)
}

type ClinicResolver interface {
	Resolve(ctx context.Context, ids []uuid.UUID) (map[string]models.Clinic, error)
}

type Service interface {
	Create(ctx context.Context, caller models.Caller, in CreateInput) (*View, error)
	Get(ctx context.Context, caller models.Caller, id uuid.UUID, populateClinic bool) (*View, error)
	List(ctx context.Context, caller models.Caller, f ListFilter) ([]View, int64, error)
	Update(ctx context.Context, caller models.Caller, id uuid.UUID, in UpdateInput) (*View, error)
	Delete(ctx context.Context, caller models.Caller, id uuid.UUID) error
}

type CreateInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	ClinicID string `json:"clinic_id"`
}

type UpdateInput struct {
	Name     *string `json:"name" validate:"omitempty,max=200"`
	ClinicID *string `json:"clinic_id"`
}

type ListFilter struct {
	ClinicID       string
	Name           string
	Sort           string
	Offset         int
	Limit          int
	PopulateClinic bool
}

type View struct {
	models.Diagnosis
	Clinic models.ClinicRef `json:"clinic_id"`
}

type service struct {
	repo    Repository
	clinics ClinicResolver
	log     *zap.Logger
}

func NewService(repo Repository, clinics ClinicResolver, log *zap.Logger) Service {
	if repo == nil {
		panic("diagnosis repository is required")
	}
	if clinics == nil {
		panic("clinic resolver is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: repo, clinics: clinics, log: log.Named("diagnosis")}
}

func (s *service) Create(ctx context.Context, caller models.Caller, in CreateInput) (*View, error) {
	name := strings.TrimSpace(in.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	scoped, err := access.ScopeCreate(caller, in.ClinicID)
	if err != nil {
		return nil, err
	}
	clinicID, err := access.ClinicUUID(scoped)
	if err != nil {
		return nil, err
	}
	if caller.IsSuperAdmin() {
		if err := access.RequireClinic(ctx, s.clinics, clinicID); err != nil {
			return nil, err
		}
	}
	if err := s.ensureUniqueName(ctx, clinicID, name, nil); err != nil {
		return nil, err
	}

	d := &models.Diagnosis{Name: name, ClinicID: clinicID}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	s.log.Info("diagnosis created",
		zap.String("diagnosis_id", d.ID.String()),
		zap.String("clinic_id", clinicID.String()))

	return s.view(ctx, d, false)
}

func (s *service) Get(ctx context.Context, caller models.Caller, id uuid.UUID, populateClinic bool) (*View, error) {
	d, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, d, populateClinic)
}

func (s *service) List(ctx context.Context, caller models.Caller, f ListFilter) ([]View, int64, error) {
	clinicID, err := access.ScopeFilter(caller, f.ClinicID)
	if err != nil {
		return nil, 0, err
	}
	items, total, err := s.repo.List(ctx, repositories.ListQuery{
		ClinicID: clinicID,
		Search:   f.Name,
		Sort:     f.Sort,
		Offset:   f.Offset,
		Limit:    f.Limit,
	})
	if err != nil {
		return nil, 0, err
	}

	var clinics map[string]models.Clinic
	if f.PopulateClinic && len(items) > 0 {
		ids := make([]uuid.UUID, len(items))
		for i := range items {
			ids[i] = items[i].ClinicID
		}
		if clinics, err = s.clinics.Resolve(ctx, ids); err != nil {
			return nil, 0, err
		}
	}

	views := make([]View, len(items))
	for i := range items {
		views[i] = View{Diagnosis: items[i], Clinic: models.ClinicRefFor(items[i].ClinicID).Resolve(clinics)}
	}
	return views, total, nil
}

func (s *service) Update(ctx context.Context, caller models.Caller, id uuid.UUID, in UpdateInput) (*View, error) {
	d, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	changed := false
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		if name != d.Name {
			d.Name = name
			changed = true
		}
	}
	if in.ClinicID != nil && caller.IsSuperAdmin() {
		clinicID, err := access.ClinicUUID(models.CanonicalClinicID(*in.ClinicID))
		if err != nil {
			return nil, err
		}
		if clinicID != d.ClinicID {
			if err := access.RequireClinic(ctx, s.clinics, clinicID); err != nil {
				return nil, err
			}
			d.ClinicID = clinicID
			changed = true
		}
	}

	if changed {
		if err := s.ensureUniqueName(ctx, d.ClinicID, d.Name, &d.ID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return s.view(ctx, d, false)
}

func (s *service) Delete(ctx context.Context, caller models.Caller, id uuid.UUID) error {
	if _, err := s.load(ctx, caller, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("diagnosis deleted", zap.String("diagnosis_id", id.String()))
	return nil
}

func (s *service) load(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.Diagnosis, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(caller, models.ClinicRefFor(d.ClinicID)); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) ensureUniqueName(ctx context.Context, clinicID uuid.UUID, name string, excludeID *uuid.UUID) error {
	exists, err := s.repo.ExistsByName(ctx, clinicID, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: diagnosis %q already exists in this clinic", apperrors.ErrDuplicate, name)
	}
	return nil
}

func (s *service) view(ctx context.Context, d *models.Diagnosis, populate bool) (*View, error) {
	ref := models.ClinicRefFor(d.ClinicID)
	if populate {
		clinics, err := s.clinics.Resolve(ctx, []uuid.UUID{d.ClinicID})
		if err != nil {
			return nil, err
		}
		ref = ref.Resolve(clinics)
	}
	return &View{Diagnosis: *d, Clinic: ref}, nil
}

func validateName(name string) error {
	v := validation.New()
	v.Required("name", name)
	v.MaxLength("name", name, MaxNameLength)
	return v.Err()
}
