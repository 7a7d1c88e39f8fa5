// Package clinic manages clinics and resolves clinic references for responses.
package clinic

import (
	"context"
	"strings"

	apperrors "clinic/internal/errors"
	"clinic/internal/models"
	"clinic/internal/repositories"
	"clinic/internal/services/access"
	"clinic/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, c *models.Clinic) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Clinic, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Clinic, error)
	List(ctx context.Context, q repositories.ListQuery) ([]models.Clinic, int64, error)
}

type CreateInput struct {
	Name string `json:"name" validate:"required,max=200"`
}

type Service interface {
	Create(ctx context.Context, caller models.Caller, in CreateInput) (*models.Clinic, error)
	Get(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.Clinic, error)
	List(ctx context.Context, caller models.Caller, q repositories.ListQuery) ([]models.Clinic, int64, error)

	// Resolve maps canonical clinic ids to their records; unknown ids are skipped.
	Resolve(ctx context.Context, ids []uuid.UUID) (map[string]models.Clinic, error)
}

type service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) Service {
	if repo == nil {
		panic("clinic repository is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: repo, log: log.Named("clinic")}
}

func (s *service) Create(ctx context.Context, caller models.Caller, in CreateInput) (*models.Clinic, error) {
	if !caller.IsSuperAdmin() {
		return nil, apperrors.ErrForbidden
	}

	name := strings.TrimSpace(in.Name)
	v := validation.New()
	v.Required("name", name)
	v.MaxLength("name", name, 200)
	if err := v.Err(); err != nil {
		return nil, err
	}

	c := &models.Clinic{Name: name}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info("clinic created", zap.String("clinic_id", c.ID.String()), zap.String("name", c.Name))
	return c, nil
}

func (s *service) Get(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.Clinic, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(caller, models.ClinicRefFor(c.ID)); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) List(ctx context.Context, caller models.Caller, q repositories.ListQuery) ([]models.Clinic, int64, error) {
	clinicID, err := access.ScopeFilter(caller, q.ClinicID)
	if err != nil {
		return nil, 0, err
	}
	q.ClinicID = clinicID
	return s.repo.List(ctx, q)
}

func (s *service) Resolve(ctx context.Context, ids []uuid.UUID) (map[string]models.Clinic, error) {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	clinics, err := s.repo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}

	out := make(map[string]models.Clinic, len(clinics))
	for _, c := range clinics {
		out[models.CanonicalClinicID(c.ID.String())] = c
	}
	return out, nil
}
