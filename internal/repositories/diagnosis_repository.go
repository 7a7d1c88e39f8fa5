package repositories

import (
	"context"

	"clinic/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var diagnosisSortColumns = map[string]string{
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type DiagnosisRepository struct {
	db *gorm.DB
}

func NewDiagnosisRepository(db *gorm.DB) *DiagnosisRepository {
	return &DiagnosisRepository{db: db}
}

func (r *DiagnosisRepository) Create(ctx context.Context, d *models.Diagnosis) error {
	return translate(r.db.WithContext(ctx).Create(d).Error, "diagnosis")
}

func (r *DiagnosisRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Diagnosis, error) {
	var d models.Diagnosis
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		return nil, translate(err, "diagnosis "+id.String())
	}
	return &d, nil
}

func (r *DiagnosisRepository) Update(ctx context.Context, d *models.Diagnosis) error {
	return translate(r.db.WithContext(ctx).Save(d).Error, "diagnosis")
}

func (r *DiagnosisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Diagnosis{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "diagnosis "+id.String())
	}
	return nil
}

func (r *DiagnosisRepository) ExistsByName(ctx context.Context, clinicID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Diagnosis{}).
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

func (r *DiagnosisRepository) List(ctx context.Context, f ListQuery) ([]models.Diagnosis, int64, error) {
	order, err := sortClause(f.Sort, diagnosisSortColumns, "name ASC")
	if err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Model(&models.Diagnosis{})
	if f.ClinicID != "" {
		q = q.Where("clinic_id = ?", f.ClinicID)
	}
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", searchPattern(f.Search))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var diagnoses []models.Diagnosis
	if err := paginate(q.Order(order), f).Find(&diagnoses).Error; err != nil {
		return nil, 0, err
	}
	return diagnoses, total, nil
}
