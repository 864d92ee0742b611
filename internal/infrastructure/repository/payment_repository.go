package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/internal/domain/enum"
	domainRepo "github.com/feetrack/feetrack-api/internal/domain/repository"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

// CreateWithLedger inserts the payment and its line items and writes the
// student's recomputed ledger fields in one transaction. The row update is
// keyed on the student id alone; callers hold the single-writer role for a
// student while recording, so no compare-and-swap is layered on top.
func (r *paymentRepository) CreateWithLedger(ctx context.Context, payment *entity.Payment, student *entity.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Student{}).
			Where("id = ?", student.ID).
			Updates(map[string]interface{}{
				"paid_amount":    student.PaidAmount,
				"pending_amount": student.PendingAmount,
			}).Error
	})
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("LineItems").
		First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) GetByReceiptNumber(ctx context.Context, receiptNumber string) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("LineItems").
		First(&payment, "receipt_number = ?", receiptNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PaymentStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Payment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *paymentRepository) List(ctx context.Context, params *domainRepo.PaymentFilterParams) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Payment{})

	if params.Search != "" {
		query = query.Where("receipt_number ILIKE ?", "%"+params.Search+"%")
	}

	if params.StudentID != nil {
		query = query.Where("student_id = ?", *params.StudentID)
	}

	if params.Method != nil {
		query = query.Where("method = ?", *params.Method)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.AcademicYear != "" {
		query = query.Where("academic_year = ?", params.AcademicYear)
	}

	if params.StartDate != nil {
		query = query.Where("payment_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("payment_date < ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "payment_date"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Student").
		Preload("LineItems").
		Order(sortBy + " " + sortOrder).
		Find(&payments).Error

	return payments, total, err
}

func (r *paymentRepository) ListCompletedInRange(ctx context.Context, from, to time.Time) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("status = ?", enum.PaymentStatusCompleted).
		Where("payment_date >= ? AND payment_date < ?", from, to).
		Preload("Student").
		Order("payment_date ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("LineItems").
		Order("payment_date DESC").
		Find(&payments).Error
	return payments, err
}
