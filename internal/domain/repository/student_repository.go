package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/pkg/pagination"
)

// StudentRepository defines the interface for student data operations
type StudentRepository interface {
	Create(ctx context.Context, student *entity.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Student, error)
	GetByAdmissionNumber(ctx context.Context, admissionNumber string) (*entity.Student, error)
	Update(ctx context.Context, student *entity.Student) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	// Delete removes the record outright. Legacy path only; Deactivate is the
	// supported way to retire a student.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *StudentFilterParams) ([]entity.Student, int64, error)
	// ListCohort returns the full unpaginated cohort for reporting. Class and
	// section are optional narrowing filters; empty strings mean "all".
	ListCohort(ctx context.Context, academicYear, className, section string) ([]entity.Student, error)
	Count(ctx context.Context, academicYear string) (int64, error)
}

// StudentFilterParams contains filtering parameters for student queries.
// All set fields are AND-ed; Search alone is an any-of, case-insensitive
// substring match across name and admission number.
type StudentFilterParams struct {
	Pagination   *pagination.PaginationParams
	Search       string
	ClassName    string
	Section      string
	AcademicYear string
	IsActive     *bool
	SortBy       string
	SortOrder    string
}
