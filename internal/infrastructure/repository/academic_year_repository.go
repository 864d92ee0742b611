package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	domainRepo "github.com/feetrack/feetrack-api/internal/domain/repository"
)

type academicYearRepository struct {
	db *gorm.DB
}

// NewAcademicYearRepository creates a new academic year repository
func NewAcademicYearRepository(db *gorm.DB) domainRepo.AcademicYearRepository {
	return &academicYearRepository{db: db}
}

func (r *academicYearRepository) Create(ctx context.Context, year *entity.AcademicYear) error {
	return r.db.WithContext(ctx).Create(year).Error
}

func (r *academicYearRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.AcademicYear, error) {
	var year entity.AcademicYear
	err := r.db.WithContext(ctx).First(&year, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &year, err
}

func (r *academicYearRepository) GetByLabel(ctx context.Context, label string) (*entity.AcademicYear, error) {
	var year entity.AcademicYear
	err := r.db.WithContext(ctx).First(&year, "label = ?", label).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &year, err
}

func (r *academicYearRepository) GetActive(ctx context.Context) (*entity.AcademicYear, error) {
	var year entity.AcademicYear
	err := r.db.WithContext(ctx).First(&year, "is_active = ?", true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &year, err
}

func (r *academicYearRepository) Update(ctx context.Context, year *entity.AcademicYear) error {
	return r.db.WithContext(ctx).Save(year).Error
}

// Activate deactivates every year and activates the target inside one
// transaction, so there is never a window with two active years.
func (r *academicYearRepository) Activate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.AcademicYear{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&entity.AcademicYear{}).
			Where("id = ?", id).
			Update("is_active", true).Error
	})
}

func (r *academicYearRepository) UpdateCounts(ctx context.Context, id uuid.UUID, studentCount, classCount int64) error {
	return r.db.WithContext(ctx).Model(&entity.AcademicYear{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"student_count": studentCount,
			"class_count":   classCount,
		}).Error
}

func (r *academicYearRepository) List(ctx context.Context) ([]entity.AcademicYear, error) {
	var years []entity.AcademicYear
	err := r.db.WithContext(ctx).Order("start_date DESC").Find(&years).Error
	return years, err
}
