package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/internal/domain/enum"
	"github.com/feetrack/feetrack-api/pkg/pagination"
)

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// CreateWithLedger persists the payment (with line items) and the student's
	// recomputed ledger fields as one atomic unit. No other write to the same
	// student may interleave between the caller reading the ledger and this
	// write landing.
	CreateWithLedger(ctx context.Context, payment *entity.Payment, student *entity.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	GetByReceiptNumber(ctx context.Context, receiptNumber string) (*entity.Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PaymentStatus) error
	List(ctx context.Context, params *PaymentFilterParams) ([]entity.Payment, int64, error)
	// ListCompletedInRange returns completed payments with payment_date in
	// [from, to), unpaginated, for report windows.
	ListCompletedInRange(ctx context.Context, from, to time.Time) ([]entity.Payment, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.Payment, error)
}

// PaymentFilterParams contains filtering parameters for payment queries
type PaymentFilterParams struct {
	Pagination   *pagination.PaginationParams
	Search       string // receipt number substring
	StudentID    *uuid.UUID
	Method       *enum.PaymentMethod
	Status       *enum.PaymentStatus
	AcademicYear string
	StartDate    *time.Time
	EndDate      *time.Time
	SortBy       string
	SortOrder    string
}
