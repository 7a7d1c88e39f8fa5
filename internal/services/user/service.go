// Package user manages staff accounts within a clinic.
package user

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	apperrors "clinic/internal/errors"
	"clinic/internal/models"
	"clinic/internal/repositories"
	"clinic/internal/services/access"
	"clinic/internal/services/auth"
	"clinic/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, q repositories.ListQuery) ([]models.User, int64, error)
}

type CreateInput struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	Name     string      `json:"name" validate:"required,max=200"`
	Role     models.Role `json:"role" validate:"required"`
	ClinicID string      `json:"clinic_id"`
}

type Service interface {
	GetByID(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, caller models.Caller, in CreateInput) (*models.User, error)
	List(ctx context.Context, caller models.Caller, q repositories.ListQuery) ([]models.User, int64, error)
}

type service struct {
	repo    Repository
	clinics access.ClinicFinder
	log     *zap.Logger
}

func NewService(repo Repository, clinics access.ClinicFinder, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: repo, clinics: clinics, log: log.Named("user")}
}

func (s *service) GetByID(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.UserID == u.ID {
		return u, nil
	}
	if err := access.Authorize(caller, models.UnresolvedClinic(u.ClinicKey())); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Create(ctx context.Context, caller models.Caller, in CreateInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)

	v := validation.New()
	v.Required("email", email)
	v.Email("email", email)
	v.Required("name", name)
	v.MaxLength("name", name, 200)
	auth.CheckPassword(v, "password", in.Password)
	v.Check(in.Role.Valid(), "role", "must be one of SUPER_ADMIN, CLINIC_ADMIN, STAFF")
	if err := v.Err(); err != nil {
		return nil, err
	}

	if in.Role.IsSuperAdmin() && !caller.IsSuperAdmin() {
		return nil, apperrors.ErrForbidden
	}
	if !caller.IsSuperAdmin() && caller.Role != models.RoleClinicAdmin {
		return nil, apperrors.ErrForbidden
	}

	user := &models.User{
		Email: email,
		Name:  name,
		Role:  in.Role,
	}
	if !in.Role.IsSuperAdmin() {
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
		user.ClinicID = &clinicID
	}

	if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: user with this email already exists", apperrors.ErrDuplicate)
	} else if err != nil && !stderrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hash

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
		zap.String("created_by", caller.UserID.String()))
	return user, nil
}

func (s *service) List(ctx context.Context, caller models.Caller, q repositories.ListQuery) ([]models.User, int64, error) {
	clinicID, err := access.ScopeFilter(caller, q.ClinicID)
	if err != nil {
		return nil, 0, err
	}
	q.ClinicID = clinicID
	return s.repo.List(ctx, q)
}
