package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	domainRepo "github.com/feetrack/feetrack-api/internal/domain/repository"
)

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *gorm.DB) domainRepo.StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *entity.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	var student entity.Student
	err := r.db.WithContext(ctx).
		Preload("Discounts").
		First(&student, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &student, err
}

func (r *studentRepository) GetByAdmissionNumber(ctx context.Context, admissionNumber string) (*entity.Student, error) {
	var student entity.Student
	err := r.db.WithContext(ctx).First(&student, "admission_number = ?", admissionNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &student, err
}

func (r *studentRepository) Update(ctx context.Context, student *entity.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Student{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *studentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&entity.Student{}, "id = ?", id).Error
}

func (r *studentRepository) List(ctx context.Context, params *domainRepo.StudentFilterParams) ([]entity.Student, int64, error) {
	var students []entity.Student
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Student{})

	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR admission_number ILIKE ?",
			like, like, like,
		)
	}

	if params.ClassName != "" {
		query = query.Where("class_name = ?", params.ClassName)
	}

	if params.Section != "" {
		query = query.Where("section = ?", params.Section)
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

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&students).Error

	return students, total, err
}

func (r *studentRepository) ListCohort(ctx context.Context, academicYear, className, section string) ([]entity.Student, error) {
	var students []entity.Student

	query := r.db.WithContext(ctx).
		Where("academic_year = ?", academicYear).
		Where("is_active = ?", true)

	if className != "" {
		query = query.Where("class_name = ?", className)
	}
	if section != "" {
		query = query.Where("section = ?", section)
	}

	err := query.Order("class_name ASC, section ASC, admission_number ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepository) Count(ctx context.Context, academicYear string) (int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&entity.Student{}).Where("is_active = ?", true)
	if academicYear != "" {
		query = query.Where("academic_year = ?", academicYear)
	}
	err := query.Count(&total).Error
	return total, err
}
