package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/internal/domain/repository"
	"github.com/feetrack/feetrack-api/pkg/apperror"
	"github.com/feetrack/feetrack-api/pkg/pagination"
)

// DiscountService handles discount record operations. Granting a discount
// goes through LedgerService.ApplyDiscount, which owns the ledger policy;
// this service covers the remaining read and maintenance paths.
type DiscountService struct {
	discountRepo repository.DiscountRepository
}

// NewDiscountService creates a new discount service
func NewDiscountService(discountRepo repository.DiscountRepository) *DiscountService {
	return &DiscountService{discountRepo: discountRepo}
}

// GetDiscount retrieves a discount by ID
func (s *DiscountService) GetDiscount(ctx context.Context, id uuid.UUID) (*entity.Discount, error) {
	discount, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, apperror.NewNotFoundError("Discount")
	}
	return discount, nil
}

// ListDiscounts lists discounts with filtering and pagination
func (s *DiscountService) ListDiscounts(ctx context.Context, params *repository.DiscountFilterParams) (*pagination.PaginatedResult[entity.Discount], error) {
	discounts, total, err := s.discountRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(discounts, pag), nil
}

// UpdateDiscountInput represents the update discount input. Type and value
// are immutable once granted; revoke and re-grant to change them.
type UpdateDiscountInput struct {
	ID         uuid.UUID
	ValidFrom  *time.Time
	ValidTo    *time.Time
	Reason     *string
	ApprovedBy *string
}

// UpdateDiscount updates a discount's validity window and audit fields
func (s *DiscountService) UpdateDiscount(ctx context.Context, input *UpdateDiscountInput) (*entity.Discount, error) {
	discount, err := s.discountRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, apperror.NewNotFoundError("Discount")
	}

	if input.ValidFrom != nil {
		discount.ValidFrom = input.ValidFrom
	}
	if input.ValidTo != nil {
		discount.ValidTo = input.ValidTo
	}
	if discount.ValidFrom != nil && discount.ValidTo != nil && discount.ValidTo.Before(*discount.ValidFrom) {
		return nil, apperror.NewBadRequestError("Validity window ends before it starts")
	}
	if input.Reason != nil {
		discount.Reason = *input.Reason
	}
	if input.ApprovedBy != nil {
		discount.ApprovedBy = *input.ApprovedBy
	}

	if err := s.discountRepo.Update(ctx, discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// RevokeDiscount deactivates a discount. The student's ledger is not
// recomputed; any already-applied concession stands.
func (s *DiscountService) RevokeDiscount(ctx context.Context, id uuid.UUID) error {
	discount, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if discount == nil {
		return apperror.NewNotFoundError("Discount")
	}
	return s.discountRepo.Deactivate(ctx, id)
}
