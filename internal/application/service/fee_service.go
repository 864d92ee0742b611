package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/internal/domain/enum"
	"github.com/feetrack/feetrack-api/internal/domain/repository"
	"github.com/feetrack/feetrack-api/pkg/apperror"
	"github.com/feetrack/feetrack-api/pkg/pagination"
)

// FeeService handles fee category and fee structure operations
type FeeService struct {
	categoryRepo  repository.FeeCategoryRepository
	structureRepo repository.FeeStructureRepository
}

// NewFeeService creates a new fee service
func NewFeeService(categoryRepo repository.FeeCategoryRepository, structureRepo repository.FeeStructureRepository) *FeeService {
	return &FeeService{categoryRepo: categoryRepo, structureRepo: structureRepo}
}

// CreateCategoryInput represents the create fee category input
type CreateCategoryInput struct {
	Name           string
	Description    string
	DefaultAmount  int64
	IsOptional     bool
	Classification string
}

// CreateCategory creates a new fee category
func (s *FeeService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.FeeCategory, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}
	if input.DefaultAmount < 0 {
		return nil, apperror.NewBadRequestError("Default amount cannot be negative")
	}

	existing, err := s.categoryRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Fee category already exists")
	}

	category := &entity.FeeCategory{
		Name:           input.Name,
		Description:    input.Description,
		DefaultAmount:  input.DefaultAmount,
		IsOptional:     input.IsOptional,
		Classification: input.Classification,
		IsActive:       true,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory retrieves a fee category by ID
func (s *FeeService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.FeeCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Fee category")
	}
	return category, nil
}

// ListCategories lists fee categories with filtering and pagination
func (s *FeeService) ListCategories(ctx context.Context, params *repository.FeeCategoryFilterParams) (*pagination.PaginatedResult[entity.FeeCategory], error) {
	categories, total, err := s.categoryRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}

// UpdateCategoryInput represents the update fee category input
type UpdateCategoryInput struct {
	ID             uuid.UUID
	Name           *string
	Description    *string
	DefaultAmount  *int64
	IsOptional     *bool
	Classification *string
}

// UpdateCategory updates a fee category
func (s *FeeService) UpdateCategory(ctx context.Context, input *UpdateCategoryInput) (*entity.FeeCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Fee category")
	}

	if input.Name != nil && *input.Name != category.Name {
		existing, err := s.categoryRepo.GetByName(ctx, *input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Fee category already exists")
		}
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.DefaultAmount != nil {
		if *input.DefaultAmount < 0 {
			return nil, apperror.NewBadRequestError("Default amount cannot be negative")
		}
		category.DefaultAmount = *input.DefaultAmount
	}
	if input.IsOptional != nil {
		category.IsOptional = *input.IsOptional
	}
	if input.Classification != nil {
		category.Classification = *input.Classification
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeactivateCategory retires a fee category. Existing structure items keep
// their reference; the category just stops appearing for new structures.
func (s *FeeService) DeactivateCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Fee category")
	}
	return s.categoryRepo.Deactivate(ctx, id)
}

// StructureItemInput is one line of a fee structure input
type StructureItemInput struct {
	FeeCategoryID uuid.UUID
	Amount        int64
	DueDate       *time.Time
	IsOptional    bool
}

// CreateStructureInput represents the create fee structure input
type CreateStructureInput struct {
	ClassName     string
	AcademicYear  string
	Frequency     enum.PaymentFrequency
	LateFeeType   enum.LateFeeType
	LateFeeAmount int64
	Items         []StructureItemInput
}

// CreateStructure creates a fee structure with its line items. Only one
// active structure may exist per class and year.
func (s *FeeService) CreateStructure(ctx context.Context, input *CreateStructureInput) (*entity.FeeStructure, error) {
	if input.ClassName == "" || input.AcademicYear == "" {
		return nil, apperror.NewBadRequestError("Class name and academic year are required")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Fee structure requires at least one item")
	}
	if input.Frequency != "" && !input.Frequency.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment frequency")
	}
	if input.LateFeeType != "" && !input.LateFeeType.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid late fee type")
	}

	items, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	existing, err := s.structureRepo.GetActiveForClass(ctx, input.ClassName, input.AcademicYear)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("An active fee structure already exists for this class and year")
	}

	structure := &entity.FeeStructure{
		ClassName:     input.ClassName,
		AcademicYear:  input.AcademicYear,
		Frequency:     input.Frequency,
		LateFeeType:   input.LateFeeType,
		LateFeeAmount: input.LateFeeAmount,
		IsActive:      true,
		Items:         items,
	}
	if structure.Frequency == "" {
		structure.Frequency = enum.PaymentFrequencyAnnual
	}
	if structure.LateFeeType == "" {
		structure.LateFeeType = enum.LateFeeTypeFixed
	}

	if err := s.structureRepo.Create(ctx, structure); err != nil {
		return nil, err
	}
	return structure, nil
}

// GetStructure retrieves a fee structure with its items
func (s *FeeService) GetStructure(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error) {
	structure, err := s.structureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if structure == nil {
		return nil, apperror.NewNotFoundError("Fee structure")
	}
	return structure, nil
}

// ListStructures lists fee structures with filtering and pagination
func (s *FeeService) ListStructures(ctx context.Context, params *repository.FeeStructureFilterParams) (*pagination.PaginatedResult[entity.FeeStructure], error) {
	structures, total, err := s.structureRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(structures, pag), nil
}

// UpdateStructureInput represents the update fee structure input. A non-nil
// Items slice replaces the whole item list.
type UpdateStructureInput struct {
	ID            uuid.UUID
	Frequency     *enum.PaymentFrequency
	LateFeeType   *enum.LateFeeType
	LateFeeAmount *int64
	Items         []StructureItemInput
}

// UpdateStructure updates a fee structure. Editing a structure does not
// retroactively change students already assigned to it.
func (s *FeeService) UpdateStructure(ctx context.Context, input *UpdateStructureInput) (*entity.FeeStructure, error) {
	structure, err := s.structureRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if structure == nil {
		return nil, apperror.NewNotFoundError("Fee structure")
	}

	if input.Frequency != nil {
		if !input.Frequency.IsValid() {
			return nil, apperror.NewBadRequestError("Invalid payment frequency")
		}
		structure.Frequency = *input.Frequency
	}
	if input.LateFeeType != nil {
		if !input.LateFeeType.IsValid() {
			return nil, apperror.NewBadRequestError("Invalid late fee type")
		}
		structure.LateFeeType = *input.LateFeeType
	}
	if input.LateFeeAmount != nil {
		structure.LateFeeAmount = *input.LateFeeAmount
	}

	if err := s.structureRepo.Update(ctx, structure); err != nil {
		return nil, err
	}

	if input.Items != nil {
		items, err := s.buildItems(ctx, input.Items)
		if err != nil {
			return nil, err
		}
		for i := range items {
			items[i].FeeStructureID = structure.ID
		}
		if err := s.structureRepo.ReplaceItems(ctx, structure.ID, items); err != nil {
			return nil, err
		}
		structure.Items = items
	}
	return structure, nil
}

// DeactivateStructure retires a fee structure so it stops matching new admissions
func (s *FeeService) DeactivateStructure(ctx context.Context, id uuid.UUID) error {
	structure, err := s.structureRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if structure == nil {
		return apperror.NewNotFoundError("Fee structure")
	}
	return s.structureRepo.Deactivate(ctx, id)
}

func (s *FeeService) buildItems(ctx context.Context, inputs []StructureItemInput) ([]entity.FeeStructureItem, error) {
	items := make([]entity.FeeStructureItem, 0, len(inputs))
	for i, in := range inputs {
		if in.Amount < 0 {
			return nil, apperror.NewBadRequestError("Item amount cannot be negative")
		}
		category, err := s.categoryRepo.GetByID(ctx, in.FeeCategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Fee category")
		}
		items = append(items, entity.FeeStructureItem{
			FeeCategoryID: in.FeeCategoryID,
			Amount:        in.Amount,
			DueDate:       in.DueDate,
			IsOptional:    in.IsOptional,
			Position:      i,
		})
	}
	return items, nil
}
