package repositories

import (
	"context"

	"clinic/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssistantFilter narrows an assistant listing.
type AssistantFilter struct {
	ListQuery
	IsActive       *bool
	BranchID       *uuid.UUID
	EmploymentType string
}

var assistantSortColumns = map[string]string{
	"name":       "name",
	"surname":    "surname",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type AssistantRepository struct {
	db *gorm.DB
}

func NewAssistantRepository(db *gorm.DB) *AssistantRepository {
	return &AssistantRepository{db: db}
}

// Create inserts the assistant with its branch assignments and timetables.
func (r *AssistantRepository) Create(ctx context.Context, a *models.Assistant) error {
	return translate(r.db.WithContext(ctx).Create(a).Error, "assistant")
}

func (r *AssistantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Assistant, error) {
	var a models.Assistant
	err := r.db.WithContext(ctx).
		Preload("Branches.Timetable").
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, translate(err, "assistant "+id.String())
	}
	return &a, nil
}

// Update saves the assistant's own columns. When replaceBranches is set the
// existing branch assignments are dropped and a.Branches inserted in their place.
func (r *AssistantRepository) Update(ctx context.Context, a *models.Assistant, replaceBranches bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Branches").Save(a).Error; err != nil {
			return translate(err, "assistant")
		}
		if !replaceBranches {
			return nil
		}

		sub := tx.Model(&models.AssistantBranch{}).Select("id").Where("assistant_id = ?", a.ID)
		if err := tx.Where("assistant_branch_id IN (?)", sub).Delete(&models.TimetableEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assistant_id = ?", a.ID).Delete(&models.AssistantBranch{}).Error; err != nil {
			return err
		}

		for i := range a.Branches {
			a.Branches[i].ID = uuid.Nil
			a.Branches[i].AssistantID = a.ID
			for j := range a.Branches[i].Timetable {
				a.Branches[i].Timetable[j].ID = uuid.Nil
			}
		}
		if len(a.Branches) == 0 {
			return nil
		}
		return tx.Create(&a.Branches).Error
	})
}

func (r *AssistantRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).Model(&models.Assistant{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "assistant "+id.String())
	}
	return nil
}

func (r *AssistantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&models.AssistantBranch{}).Select("id").Where("assistant_id = ?", id)
		if err := tx.Where("assistant_branch_id IN (?)", sub).Delete(&models.TimetableEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assistant_id = ?", id).Delete(&models.AssistantBranch{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Assistant{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound, "assistant "+id.String())
		}
		return nil
	})
}

func (r *AssistantRepository) List(ctx context.Context, f AssistantFilter) ([]models.Assistant, int64, error) {
	order, err := sortClause(f.Sort, assistantSortColumns, "name ASC")
	if err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Model(&models.Assistant{})
	if f.ClinicID != "" {
		q = q.Where("clinic_id = ?", f.ClinicID)
	}
	if f.Search != "" {
		pattern := searchPattern(f.Search)
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(surname) LIKE ? OR LOWER(COALESCE(nickname, '')) LIKE ?)",
			pattern, pattern, pattern)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	if f.EmploymentType != "" {
		q = q.Where("employment_type = ?", f.EmploymentType)
	}
	if f.BranchID != nil {
		q = q.Where("EXISTS (SELECT 1 FROM assistant_branches ab WHERE ab.assistant_id = assistants.id AND ab.branch_id = ?)", *f.BranchID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assistants []models.Assistant
	err = paginate(q.Order(order), f.ListQuery).
		Preload("Branches.Timetable").
		Find(&assistants).Error
	if err != nil {
		return nil, 0, err
	}
	return assistants, total, nil
}
