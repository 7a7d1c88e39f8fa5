package repositories

import (
	"context"

	"clinic/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BranchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

func (r *BranchRepository) Create(ctx context.Context, b *models.Branch) error {
	return translate(r.db.WithContext(ctx).Create(b).Error, "branch")
}

func (r *BranchRepository) List(ctx context.Context, q ListQuery) ([]models.Branch, int64, error) {
	db := r.db.WithContext(ctx).Model(&models.Branch{})
	if q.ClinicID != "" {
		db = db.Where("clinic_id = ?", q.ClinicID)
	}
	if q.Search != "" {
		db = db.Where("LOWER(name) LIKE ?", searchPattern(q.Search))
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var branches []models.Branch
	if err := paginate(db.Order("name ASC"), q).Find(&branches).Error; err != nil {
		return nil, 0, err
	}
	return branches, total, nil
}

// FindByIDs returns the branches among ids that exist, in one query.
func (r *BranchRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Branch, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var branches []models.Branch
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}
