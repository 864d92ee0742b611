package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	domainRepo "github.com/feetrack/feetrack-api/internal/domain/repository"
)

type discountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository creates a new discount repository
func NewDiscountRepository(db *gorm.DB) domainRepo.DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(ctx context.Context, discount *entity.Discount) error {
	return r.db.WithContext(ctx).Create(discount).Error
}

func (r *discountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error) {
	var discount entity.Discount
	err := r.db.WithContext(ctx).
		Preload("Categories").
		First(&discount, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &discount, err
}

func (r *discountRepository) Update(ctx context.Context, discount *entity.Discount) error {
	return r.db.WithContext(ctx).Save(discount).Error
}

func (r *discountRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Discount{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *discountRepository) List(ctx context.Context, params *domainRepo.DiscountFilterParams) ([]entity.Discount, int64, error) {
	var discounts []entity.Discount
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Discount{})

	if params.StudentID != nil {
		query = query.Where("student_id = ?", *params.StudentID)
	}

	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Categories").
		Order("created_at DESC").
		Find(&discounts).Error

	return discounts, total, err
}

func (r *discountRepository) ListActiveForStudent(ctx context.Context, studentID uuid.UUID, at time.Time) ([]entity.Discount, error) {
	var discounts []entity.Discount
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("is_active = ?", true).
		Where("valid_from IS NULL OR valid_from <= ?", at).
		Where("valid_to IS NULL OR valid_to >= ?", at).
		Preload("Categories").
		Order("created_at ASC").
		Find(&discounts).Error
	return discounts, err
}
