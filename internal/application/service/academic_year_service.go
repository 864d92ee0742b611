package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/internal/domain/repository"
	"github.com/feetrack/feetrack-api/pkg/apperror"
)

// AcademicYearService handles academic year lifecycle operations
type AcademicYearService struct {
	yearRepo    repository.AcademicYearRepository
	studentRepo repository.StudentRepository
	classRepo   repository.ClassRepository
}

// NewAcademicYearService creates a new academic year service
func NewAcademicYearService(yearRepo repository.AcademicYearRepository, studentRepo repository.StudentRepository, classRepo repository.ClassRepository) *AcademicYearService {
	return &AcademicYearService{yearRepo: yearRepo, studentRepo: studentRepo, classRepo: classRepo}
}

// CreateAcademicYearInput represents the create academic year input
type CreateAcademicYearInput struct {
	Label     string
	StartDate time.Time
	EndDate   time.Time
}

// CreateAcademicYear creates a new academic year. Labels are unique; the new
// year starts inactive and must be activated explicitly.
func (s *AcademicYearService) CreateAcademicYear(ctx context.Context, input *CreateAcademicYearInput) (*entity.AcademicYear, error) {
	if input.Label == "" {
		return nil, apperror.NewBadRequestError("Academic year label is required")
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, apperror.NewBadRequestError("End date must be after start date")
	}

	existing, err := s.yearRepo.GetByLabel(ctx, input.Label)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Academic year already exists")
	}

	year := &entity.AcademicYear{
		Label:     input.Label,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}

	if err := s.yearRepo.Create(ctx, year); err != nil {
		return nil, err
	}
	return year, nil
}

// GetAcademicYear retrieves an academic year by ID
func (s *AcademicYearService) GetAcademicYear(ctx context.Context, id uuid.UUID) (*entity.AcademicYear, error) {
	year, err := s.yearRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if year == nil {
		return nil, apperror.NewNotFoundError("Academic year")
	}
	return year, nil
}

// GetActiveAcademicYear retrieves the currently active academic year
func (s *AcademicYearService) GetActiveAcademicYear(ctx context.Context) (*entity.AcademicYear, error) {
	year, err := s.yearRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if year == nil {
		return nil, apperror.NewNotFoundError("Active academic year")
	}
	return year, nil
}

// ListAcademicYears lists all academic years with refreshed student and
// class counters.
func (s *AcademicYearService) ListAcademicYears(ctx context.Context) ([]entity.AcademicYear, error) {
	years, err := s.yearRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range years {
		studentCount, err := s.studentRepo.Count(ctx, years[i].Label)
		if err != nil {
			return nil, err
		}
		classCount, err := s.classRepo.Count(ctx, years[i].Label)
		if err != nil {
			return nil, err
		}
		if studentCount != years[i].StudentCount || classCount != years[i].ClassCount {
			if err := s.yearRepo.UpdateCounts(ctx, years[i].ID, studentCount, classCount); err != nil {
				return nil, err
			}
			years[i].StudentCount = studentCount
			years[i].ClassCount = classCount
		}
	}
	return years, nil
}

// ActivateAcademicYear makes the given year the single active one
func (s *AcademicYearService) ActivateAcademicYear(ctx context.Context, id uuid.UUID) (*entity.AcademicYear, error) {
	year, err := s.yearRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if year == nil {
		return nil, apperror.NewNotFoundError("Academic year")
	}

	if err := s.yearRepo.Activate(ctx, id); err != nil {
		return nil, err
	}
	year.IsActive = true
	return year, nil
}
