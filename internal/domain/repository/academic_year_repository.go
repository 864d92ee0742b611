package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
)

// AcademicYearRepository defines the interface for academic year data operations
type AcademicYearRepository interface {
	Create(ctx context.Context, year *entity.AcademicYear) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.AcademicYear, error)
	GetByLabel(ctx context.Context, label string) (*entity.AcademicYear, error)
	GetActive(ctx context.Context) (*entity.AcademicYear, error)
	Update(ctx context.Context, year *entity.AcademicYear) error
	// Activate marks the given year active and every other year inactive in a
	// single atomic batch, so two concurrent activations cannot leave two
	// active years.
	Activate(ctx context.Context, id uuid.UUID) error
	UpdateCounts(ctx context.Context, id uuid.UUID, studentCount, classCount int64) error
	List(ctx context.Context) ([]entity.AcademicYear, error)
}
