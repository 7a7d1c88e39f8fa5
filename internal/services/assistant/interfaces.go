package assistant

import (
	"context"

	"clinic/internal/models"
	"clinic/internal/repositories"

	"github.com/google/uuid"
)

// Repository is the assistant persistence the service depends on.
type Repository interface {
	Create(ctx context.Context, a *models.Assistant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Assistant, error)
	Update(ctx context.Context, a *models.Assistant, replaceBranches bool) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f repositories.AssistantFilter) ([]models.Assistant, int64, error)
}

// BranchFinder checks branch references in a single query.
type BranchFinder interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Branch, error)
}

type ClinicResolver interface {
	Resolve(ctx context.Context, ids []uuid.UUID) (map[string]models.Clinic, error)
}

// Service defines the assistant operations exposed to handlers
type Service interface {
	Create(ctx context.Context, caller models.Caller, in CreateInput) (*View, error)
	Get(ctx context.Context, caller models.Caller, id uuid.UUID, populateClinic bool) (*View, error)
	List(ctx context.Context, caller models.Caller, f ListFilter) ([]View, int64, error)
	Update(ctx context.Context, caller models.Caller, id uuid.UUID, in UpdateInput) (*View, error)
	Delete(ctx context.Context, caller models.Caller, id uuid.UUID) error

	// SetStatus activates or deactivates an assistant.
	SetStatus(ctx context.Context, caller models.Caller, id uuid.UUID, active bool) (*View, error)
}
