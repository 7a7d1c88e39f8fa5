package treatment

import (
	"context"

	"clinic/internal/models"
	"clinic/internal/repositories"
	"clinic/internal/services/fee"

	"github.com/google/uuid"
)

// Repository is the persistence the treatment service needs.
type Repository interface {
	Create(ctx context.Context, t *models.Treatment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Treatment, error)
	Update(ctx context.Context, t *models.Treatment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByName(ctx context.Context, clinicID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)
	List(ctx context.Context, f repositories.TreatmentFilter) ([]models.Treatment, int64, error)
}

// ClinicResolver looks up clinics for ?populate=clinic.
type ClinicResolver interface {
	Resolve(ctx context.Context, ids []uuid.UUID) (map[string]models.Clinic, error)
}

// Service defines the treatment operations exposed to handlers
type Service interface {
	// CRUD
	Create(ctx context.Context, caller models.Caller, in CreateInput) (*View, error)
	Get(ctx context.Context, caller models.Caller, id uuid.UUID, opts ViewOptions) (*View, error)
	List(ctx context.Context, caller models.Caller, f ListFilter) ([]View, int64, error)
	Update(ctx context.Context, caller models.Caller, id uuid.UUID, in UpdateInput) (*View, error)
	Delete(ctx context.Context, caller models.Caller, id uuid.UUID) error

	// Fee calculation
	PreviewFees(ctx context.Context, caller models.Caller, id uuid.UUID, o FeeOverride) (*fee.Calculation, error)
	Calculate(in CalculateInput) (*fee.Calculation, error)

	// Export writes the scoped price list as an xlsx workbook.
	Export(ctx context.Context, caller models.Caller, f ListFilter) ([]byte, error)
}
