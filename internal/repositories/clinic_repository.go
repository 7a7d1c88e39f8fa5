package repositories

import (
	"context"

	"clinic/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClinicRepository struct {
	db *gorm.DB
}

func NewClinicRepository(db *gorm.DB) *ClinicRepository {
	return &ClinicRepository{db: db}
}

func (r *ClinicRepository) Create(ctx context.Context, c *models.Clinic) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, "clinic "+c.Name)
}

func (r *ClinicRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Clinic, error) {
	var c models.Clinic
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translate(err, "clinic "+id.String())
	}
	return &c, nil
}

func (r *ClinicRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Clinic, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var clinics []models.Clinic
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&clinics).Error; err != nil {
		return nil, err
	}
	return clinics, nil
}

func (r *ClinicRepository) List(ctx context.Context, q ListQuery) ([]models.Clinic, int64, error) {
	db := r.db.WithContext(ctx).Model(&models.Clinic{})
	if q.ClinicID != "" {
		db = db.Where("id = ?", q.ClinicID)
	}
	if q.Search != "" {
		db = db.Where("LOWER(name) LIKE ?", searchPattern(q.Search))
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clinics []models.Clinic
	if err := paginate(db.Order("name ASC"), q).Find(&clinics).Error; err != nil {
		return nil, 0, err
	}
	return clinics, total, nil
}
