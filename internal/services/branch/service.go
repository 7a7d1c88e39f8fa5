// Package branch manages the physical branches of a clinic.
package branch

import (
	"context"
	"strings"

	"clinic/internal/models"
	"clinic/internal/repositories"
	"clinic/internal/services/access"
	"clinic/internal/validation"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, b *models.Branch) error
	List(ctx context.Context, q repositories.ListQuery) ([]models.Branch, int64, error)
}

type CreateInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	Address  string `json:"address" validate:"max=500"`
	ClinicID string `json:"clinic_id"`
}

type Service interface {
	Create(ctx context.Context, caller models.Caller, in CreateInput) (*models.Branch, error)
	List(ctx context.Context, caller models.Caller, q repositories.ListQuery) ([]models.Branch, int64, error)
}

type service struct {
	repo    Repository
	clinics access.ClinicFinder
	log     *zap.Logger
}

func NewService(repo Repository, clinics access.ClinicFinder, log *zap.Logger) Service {
	if repo == nil {
		panic("branch repository is required")
	}
	if clinics == nil {
		panic("clinic finder is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: repo, clinics: clinics, log: log.Named("branch")}
}

func (s *service) Create(ctx context.Context, caller models.Caller, in CreateInput) (*models.Branch, error) {
	name := strings.TrimSpace(in.Name)
	address := strings.TrimSpace(in.Address)

	v := validation.New()
	v.Required("name", name)
	v.MaxLength("name", name, 200)
	v.MaxLength("address", address, 500)
	if err := v.Err(); err != nil {
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

	b := &models.Branch{Name: name, Address: address, ClinicID: clinicID}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	s.log.Info("branch created",
		zap.String("branch_id", b.ID.String()),
		zap.String("clinic_id", clinicID.String()))
	return b, nil
}

func (s *service) List(ctx context.Context, caller models.Caller, q repositories.ListQuery) ([]models.Branch, int64, error) {
	clinicID, err := access.ScopeFilter(caller, q.ClinicID)
	if err != nil {
		return nil, 0, err
	}
	q.ClinicID = clinicID
	return s.repo.List(ctx, q)
}
