package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/internal/domain/repository"
	"github.com/feetrack/feetrack-api/pkg/apperror"
	"github.com/feetrack/feetrack-api/pkg/pagination"
)

// ClassService handles class and section operations
type ClassService struct {
	classRepo repository.ClassRepository
}

// NewClassService creates a new class service
func NewClassService(classRepo repository.ClassRepository) *ClassService {
	return &ClassService{classRepo: classRepo}
}

// SectionInput is one section of a class input
type SectionInput struct {
	Name     string
	Capacity int
}

// CreateClassInput represents the create class input
type CreateClassInput struct {
	Name         string
	GradeLevel   int
	AcademicYear string
	Sections     []SectionInput
}

// CreateClass creates a class for an academic year. Class names are unique
// within a year.
func (s *ClassService) CreateClass(ctx context.Context, input *CreateClassInput) (*entity.Class, error) {
	if input.Name == "" || input.AcademicYear == "" {
		return nil, apperror.NewBadRequestError("Class name and academic year are required")
	}

	existing, err := s.classRepo.GetByNameAndYear(ctx, input.Name, input.AcademicYear)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Class already exists for this academic year")
	}

	class := &entity.Class{
		Name:         input.Name,
		GradeLevel:   input.GradeLevel,
		AcademicYear: input.AcademicYear,
		IsActive:     true,
	}
	for _, sec := range input.Sections {
		class.Sections = append(class.Sections, entity.Section{
			Name:     sec.Name,
			Capacity: sec.Capacity,
		})
	}

	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// GetClass retrieves a class by ID
func (s *ClassService) GetClass(ctx context.Context, id uuid.UUID) (*entity.Class, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, apperror.NewNotFoundError("Class")
	}
	return class, nil
}

// ListClasses lists classes with filtering and pagination
func (s *ClassService) ListClasses(ctx context.Context, params *repository.ClassFilterParams) (*pagination.PaginatedResult[entity.Class], error) {
	classes, total, err := s.classRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(classes, pag), nil
}

// UpdateClassInput represents the update class input
type UpdateClassInput struct {
	ID         uuid.UUID
	Name       *string
	GradeLevel *int
}

// UpdateClass updates a class
func (s *ClassService) UpdateClass(ctx context.Context, input *UpdateClassInput) (*entity.Class, error) {
	class, err := s.classRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, apperror.NewNotFoundError("Class")
	}

	if input.Name != nil && *input.Name != class.Name {
		existing, err := s.classRepo.GetByNameAndYear(ctx, *input.Name, class.AcademicYear)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Class already exists for this academic year")
		}
		class.Name = *input.Name
	}
	if input.GradeLevel != nil {
		class.GradeLevel = *input.GradeLevel
	}

	if err := s.classRepo.Update(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// DeactivateClass retires a class
func (s *ClassService) DeactivateClass(ctx context.Context, id uuid.UUID) error {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if class == nil {
		return apperror.NewNotFoundError("Class")
	}
	return s.classRepo.Deactivate(ctx, id)
}
