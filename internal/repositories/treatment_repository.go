package repositories

import (
	"context"

	"clinic/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TreatmentFilter narrows a treatment listing.
type TreatmentFilter struct {
	ListQuery
	IncludeVat *bool
}

var treatmentSortColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type TreatmentRepository struct {
	db *gorm.DB
}

func NewTreatmentRepository(db *gorm.DB) *TreatmentRepository {
	return &TreatmentRepository{db: db}
}

func (r *TreatmentRepository) Create(ctx context.Context, t *models.Treatment) error {
	return translate(r.db.WithContext(ctx).Create(t).Error, "treatment")
}

func (r *TreatmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Treatment, error) {
	var t models.Treatment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, translate(err, "treatment "+id.String())
	}
	return &t, nil
}

func (r *TreatmentRepository) Update(ctx context.Context, t *models.Treatment) error {
	return translate(r.db.WithContext(ctx).Save(t).Error, "treatment")
}

func (r *TreatmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Treatment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "treatment "+id.String())
	}
	return nil
}

// ExistsByName reports whether another treatment in the clinic has this name.
func (r *TreatmentRepository) ExistsByName(ctx context.Context, clinicID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Treatment{}).
		Where("clinic_id = ? AND name = ?", clinicID, name)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TreatmentRepository) List(ctx context.Context, f TreatmentFilter) ([]models.Treatment, int64, error) {
	order, err := sortClause(f.Sort, treatmentSortColumns, "name ASC")
	if err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Model(&models.Treatment{})
	if f.ClinicID != "" {
		q = q.Where("clinic_id = ?", f.ClinicID)
	}
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", searchPattern(f.Search))
	}
	if f.IncludeVat != nil {
		q = q.Where("include_vat = ?", *f.IncludeVat)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var treatments []models.Treatment
	if err := paginate(q.Order(order), f.ListQuery).Find(&treatments).Error; err != nil {
		return nil, 0, err
	}
	return treatments, total, nil
}
