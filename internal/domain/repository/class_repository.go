package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/pkg/pagination"
)

// ClassRepository defines the interface for class data operations
type ClassRepository interface {
	Create(ctx context.Context, class *entity.Class) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Class, error)
	GetByNameAndYear(ctx context.Context, name, academicYear string) (*entity.Class, error)
	Update(ctx context.Context, class *entity.Class) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ClassFilterParams) ([]entity.Class, int64, error)
	Count(ctx context.Context, academicYear string) (int64, error)
}

// ClassFilterParams contains filtering parameters for class queries
type ClassFilterParams struct {
	Pagination   *pagination.PaginationParams
	Search       string
	AcademicYear string
	IsActive     *bool
}
