package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	domainRepo "github.com/feetrack/feetrack-api/internal/domain/repository"
)

type feeCategoryRepository struct {
	db *gorm.DB
}

// NewFeeCategoryRepository creates a new fee category repository
func NewFeeCategoryRepository(db *gorm.DB) domainRepo.FeeCategoryRepository {
	return &feeCategoryRepository{db: db}
}

func (r *feeCategoryRepository) Create(ctx context.Context, category *entity.FeeCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *feeCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FeeCategory, error) {
	var category entity.FeeCategory
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *feeCategoryRepository) GetByName(ctx context.Context, name string) (*entity.FeeCategory, error) {
	var category entity.FeeCategory
	err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *feeCategoryRepository) Update(ctx context.Context, category *entity.FeeCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *feeCategoryRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.FeeCategory{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *feeCategoryRepository) List(ctx context.Context, params *domainRepo.FeeCategoryFilterParams) ([]entity.FeeCategory, int64, error) {
	var categories []entity.FeeCategory
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.FeeCategory{})

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("name ASC").
		Find(&categories).Error

	return categories, total, err
}

type feeStructureRepository struct {
	db *gorm.DB
}

// NewFeeStructureRepository creates a new fee structure repository
func NewFeeStructureRepository(db *gorm.DB) domainRepo.FeeStructureRepository {
	return &feeStructureRepository{db: db}
}

func (r *feeStructureRepository) Create(ctx context.Context, structure *entity.FeeStructure) error {
	return r.db.WithContext(ctx).Create(structure).Error
}

func (r *feeStructureRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error) {
	var structure entity.FeeStructure
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Items.FeeCategory").
		First(&structure, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &structure, err
}

func (r *feeStructureRepository) GetActiveForClass(ctx context.Context, className, academicYear string) (*entity.FeeStructure, error) {
	var structure entity.FeeStructure
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Items.FeeCategory").
		First(&structure, "class_name = ? AND academic_year = ? AND is_active = ?", className, academicYear, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &structure, err
}

func (r *feeStructureRepository) Update(ctx context.Context, structure *entity.FeeStructure) error {
	return r.db.WithContext(ctx).Save(structure).Error
}

func (r *feeStructureRepository) ReplaceItems(ctx context.Context, structureID uuid.UUID, items []entity.FeeStructureItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.FeeStructureItem{}, "fee_structure_id = ?", structureID).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].FeeStructureID = structureID
			items[i].Position = i
		}
		return tx.Create(&items).Error
	})
}

func (r *feeStructureRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.FeeStructure{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *feeStructureRepository) List(ctx context.Context, params *domainRepo.FeeStructureFilterParams) ([]entity.FeeStructure, int64, error) {
	var structures []entity.FeeStructure
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.FeeStructure{})

	if params.ClassName != "" {
		query = query.Where("class_name = ?", params.ClassName)
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

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Items.FeeCategory").
		Order("academic_year DESC, class_name ASC").
		Find(&structures).Error

	return structures, total, err
}
