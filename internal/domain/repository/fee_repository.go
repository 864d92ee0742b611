package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/pkg/pagination"
)

// FeeCategoryRepository defines the interface for fee category data operations
type FeeCategoryRepository interface {
	Create(ctx context.Context, category *entity.FeeCategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FeeCategory, error)
	GetByName(ctx context.Context, name string) (*entity.FeeCategory, error)
	Update(ctx context.Context, category *entity.FeeCategory) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *FeeCategoryFilterParams) ([]entity.FeeCategory, int64, error)
}

// FeeCategoryFilterParams contains filtering parameters for fee category queries
type FeeCategoryFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	IsActive   *bool
}

// FeeStructureRepository defines the interface for fee structure data operations
type FeeStructureRepository interface {
	// Create persists the structure together with its items
	Create(ctx context.Context, structure *entity.FeeStructure) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error)
	// GetActiveForClass resolves the active structure a student admitted to the
	// given class and year is assigned. Returns nil when none exists.
	GetActiveForClass(ctx context.Context, className, academicYear string) (*entity.FeeStructure, error)
	Update(ctx context.Context, structure *entity.FeeStructure) error
	ReplaceItems(ctx context.Context, structureID uuid.UUID, items []entity.FeeStructureItem) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *FeeStructureFilterParams) ([]entity.FeeStructure, int64, error)
}

// FeeStructureFilterParams contains filtering parameters for fee structure queries
type FeeStructureFilterParams struct {
	Pagination   *pagination.PaginationParams
	ClassName    string
	AcademicYear string
	IsActive     *bool
}
