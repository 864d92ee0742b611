package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	domainRepo "github.com/feetrack/feetrack-api/internal/domain/repository"
)

type classRepository struct {
	db *gorm.DB
}

// NewClassRepository creates a new class repository
func NewClassRepository(db *gorm.DB) domainRepo.ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) Create(ctx context.Context, class *entity.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Class, error) {
	var class entity.Class
	err := r.db.WithContext(ctx).
		Preload("Sections").
		First(&class, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &class, err
}

func (r *classRepository) GetByNameAndYear(ctx context.Context, name, academicYear string) (*entity.Class, error) {
	var class entity.Class
	err := r.db.WithContext(ctx).
		Preload("Sections").
		First(&class, "name = ? AND academic_year = ?", name, academicYear).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &class, err
}

func (r *classRepository) Update(ctx context.Context, class *entity.Class) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(class).Error
}

func (r *classRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Class{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *classRepository) List(ctx context.Context, params *domainRepo.ClassFilterParams) ([]entity.Class, int64, error) {
	var classes []entity.Class
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Class{})

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	if params.AcademicYear != "" {
		query = query.Where("academic_year = ?", params.AcademicYear)
	}

	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Sections").
		Order("grade_level ASC, name ASC").
		Find(&classes).Error

	return classes, total, err
}

func (r *classRepository) Count(ctx context.Context, academicYear string) (int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&entity.Class{}).Where("is_active = ?", true)
	if academicYear != "" {
		query = query.Where("academic_year = ?", academicYear)
	}
	err := query.Count(&total).Error
	return total, err
}
