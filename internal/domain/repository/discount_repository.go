package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/pkg/pagination"
)

// DiscountRepository defines the interface for discount data operations
type DiscountRepository interface {
	Create(ctx context.Context, discount *entity.Discount) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error)
	Update(ctx context.Context, discount *entity.Discount) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *DiscountFilterParams) ([]entity.Discount, int64, error)
	// ListActiveForStudent returns the student's active discounts whose
	// validity window covers at.
	ListActiveForStudent(ctx context.Context, studentID uuid.UUID, at time.Time) ([]entity.Discount, error)
}

// DiscountFilterParams contains filtering parameters for discount queries
type DiscountFilterParams struct {
	Pagination *pagination.PaginationParams
	StudentID  *uuid.UUID
	IsActive   *bool
}
