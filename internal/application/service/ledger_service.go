package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/config"
	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/internal/domain/enum"
	"github.com/feetrack/feetrack-api/internal/domain/repository"
	"github.com/feetrack/feetrack-api/pkg/apperror"
	"github.com/feetrack/feetrack-api/pkg/pagination"
	"github.com/feetrack/feetrack-api/pkg/receipt"
)

// LedgerService owns a student's fee ledger: structure assignment, payment
// recording, discount grants and year-end carry forward.
//
// Two legacy behaviours are deliberately preserved behind config flags rather
// than silently fixed:
//   - a payment's declared total is not reconciled against its line items
//     unless LedgerConfig.ValidateLineItems is on;
//   - granted discounts do not reduce the student's balance unless
//     LedgerConfig.AutoApplyDiscounts is on.
//
// The ledger also does not prevent over-payment; paid amounts above the total
// surface as the "advance" standing.
type LedgerService struct {
	studentRepo   repository.StudentRepository
	paymentRepo   repository.PaymentRepository
	discountRepo  repository.DiscountRepository
	structureRepo repository.FeeStructureRepository
	receipts      *receipt.Generator
	policy        config.LedgerConfig
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	studentRepo repository.StudentRepository,
	paymentRepo repository.PaymentRepository,
	discountRepo repository.DiscountRepository,
	structureRepo repository.FeeStructureRepository,
	receipts *receipt.Generator,
	policy config.LedgerConfig,
) *LedgerService {
	return &LedgerService{
		studentRepo:   studentRepo,
		paymentRepo:   paymentRepo,
		discountRepo:  discountRepo,
		structureRepo: structureRepo,
		receipts:      receipts,
		policy:        policy,
	}
}

// AssignFeeStructure resolves the active fee structure for the student's class
// and year and resets the ledger against it: totalFee becomes the structure sum
// at this moment (later edits to the structure do not propagate), paidAmount 0,
// pendingAmount the full total. When no active structure exists the ledger is
// zeroed and a not-found error is returned.
func (s *LedgerService) AssignFeeStructure(ctx context.Context, studentID uuid.UUID) (*entity.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	structure, err := s.structureRepo.GetActiveForClass(ctx, student.ClassName, student.AcademicYear)
	if err != nil {
		return nil, err
	}
	if structure == nil {
		student.FeeStructureID = nil
		student.TotalFee = 0
		student.PaidAmount = 0
		student.PendingAmount = 0
		if err := s.studentRepo.Update(ctx, student); err != nil {
			return nil, err
		}
		return student, apperror.NewNotFoundError("Fee structure")
	}

	student.FeeStructureID = &structure.ID
	student.TotalFee = structure.TotalAmount()
	student.PaidAmount = 0
	student.PendingAmount = student.TotalFee
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// PaymentLineItemInput is one fee-type line on a receipt
type PaymentLineItemInput struct {
	FeeType string
	Amount  int64
}

// RecordPaymentInput represents the record payment input
type RecordPaymentInput struct {
	StudentID   uuid.UUID
	LineItems   []PaymentLineItemInput
	TotalAmount int64
	Method      enum.PaymentMethod
	PaymentDate time.Time
	CollectedBy string
	Remarks     string
}

// RecordPayment creates an immutable receipt and applies its total to the
// student's ledger atomically: paidAmount += total, pendingAmount recomputed as
// totalFee - paidAmount in the same storage transaction as the insert.
func (s *LedgerService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Payment, error) {
	if !input.Method.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}
	if input.TotalAmount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	student, err := s.studentRepo.GetByID(ctx, input.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	if s.policy.ValidateLineItems {
		var sum int64
		for _, item := range input.LineItems {
			sum += item.Amount
		}
		if sum != input.TotalAmount {
			return nil, apperror.NewBadRequestError("Payment total does not match line items")
		}
	}

	paymentDate := input.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	lineItems := make([]entity.PaymentLineItem, 0, len(input.LineItems))
	for _, item := range input.LineItems {
		lineItems = append(lineItems, entity.PaymentLineItem{
			FeeType: item.FeeType,
			Amount:  item.Amount,
		})
	}

	payment := &entity.Payment{
		ReceiptNumber: s.receipts.Next(),
		StudentID:     student.ID,
		TotalAmount:   input.TotalAmount,
		Method:        input.Method,
		Status:        enum.PaymentStatusCompleted,
		PaymentDate:   paymentDate,
		AcademicYear:  student.AcademicYear,
		CollectedBy:   input.CollectedBy,
		Remarks:       input.Remarks,
		LineItems:     lineItems,
	}

	student.PaidAmount += input.TotalAmount
	student.PendingAmount = student.TotalFee - student.PaidAmount

	if err := s.paymentRepo.CreateWithLedger(ctx, payment, student); err != nil {
		return nil, err
	}
	return payment, nil
}

// ApplyDiscountInput represents the apply discount input
type ApplyDiscountInput struct {
	Type       enum.DiscountType
	Value      int64
	Categories []entity.FeeCategory
	ValidFrom  *time.Time
	ValidTo    *time.Time
	Reason     string
	ApprovedBy string
}

// ApplyDiscount stores a discount grant against the student. The ledger is
// only touched when the auto-apply policy is enabled; the default mirrors the
// legacy system, which recorded discounts without netting them.
func (s *LedgerService) ApplyDiscount(ctx context.Context, studentID uuid.UUID, input *ApplyDiscountInput) (*entity.Discount, error) {
	if !input.Type.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid discount type")
	}
	if input.Value <= 0 {
		return nil, apperror.NewBadRequestError("Discount value must be positive")
	}
	if input.Type == enum.DiscountTypePercentage && input.Value > 100 {
		return nil, apperror.NewBadRequestError("Percentage discount cannot exceed 100")
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	discount := &entity.Discount{
		StudentID:  student.ID,
		Type:       input.Type,
		Value:      input.Value,
		Categories: input.Categories,
		ValidFrom:  input.ValidFrom,
		ValidTo:    input.ValidTo,
		Reason:     input.Reason,
		ApprovedBy: input.ApprovedBy,
		IsActive:   true,
	}

	if err := s.discountRepo.Create(ctx, discount); err != nil {
		return nil, err
	}

	if s.policy.AutoApplyDiscounts && discount.ValidAt(time.Now()) {
		student.TotalFee -= discount.AmountAgainst(student.TotalFee)
		student.PendingAmount = student.TotalFee - student.PaidAmount
		if err := s.studentRepo.Update(ctx, student); err != nil {
			return nil, err
		}
	}

	return discount, nil
}

// CarryForward closes the student's ledger for the year. A positive net
// balance (paid over total) becomes an opening advance: paidAmount carries the
// surplus and nothing is pending. A negative balance becomes an opening due.
// TotalFee restarts at the absolute balance so the pending = total - paid
// identity keeps holding until the next structure assignment overwrites it.
func (s *LedgerService) CarryForward(ctx context.Context, studentID uuid.UUID, toYear string) (*entity.Student, error) {
	if toYear == "" {
		return nil, apperror.NewBadRequestError("Target academic year is required")
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	balance := student.PaidAmount - student.TotalFee
	if balance >= 0 {
		student.TotalFee = balance
		student.PaidAmount = balance
		student.PendingAmount = 0
	} else {
		student.TotalFee = -balance
		student.PaidAmount = 0
		student.PendingAmount = -balance
	}

	now := time.Now()
	student.CarryForwardAmount = balance
	student.CarryForwardDate = &now
	student.CarryForwardYear = toYear

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// GetPayment returns one payment with its line items
func (s *LedgerService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// GetPaymentByReceipt returns one payment looked up by receipt number
func (s *LedgerService) GetPaymentByReceipt(ctx context.Context, receiptNumber string) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByReceiptNumber(ctx, receiptNumber)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// ListPayments returns payments matching the filter, paginated
func (s *LedgerService) ListPayments(ctx context.Context, params *repository.PaymentFilterParams) (*pagination.PaginatedResult[entity.Payment], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	payments, total, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(payments, p), nil
}

// CancelPayment marks a receipt cancelled. Receipts are immutable, so this is
// a status flip only; the amount already applied to the ledger is not reversed
// here (a correcting entry is the bookkeeping answer).
func (s *LedgerService) CancelPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	if payment.Status == enum.PaymentStatusCancelled {
		return payment, nil
	}
	if err := s.paymentRepo.UpdateStatus(ctx, id, enum.PaymentStatusCancelled); err != nil {
		return nil, err
	}
	payment.Status = enum.PaymentStatusCancelled
	return payment, nil
}

// StudentLedger is a student's full financial picture
type StudentLedger struct {
	Student   *entity.Student   `json:"student"`
	Status    enum.FeeStatus    `json:"status"`
	Payments  []entity.Payment  `json:"payments"`
	Discounts []entity.Discount `json:"discounts"`
}

// GetStudentLedger returns the student together with their payment history and
// active discounts
func (s *LedgerService) GetStudentLedger(ctx context.Context, studentID uuid.UUID) (*StudentLedger, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	payments, err := s.paymentRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	discounts, err := s.discountRepo.ListActiveForStudent(ctx, studentID, time.Now())
	if err != nil {
		return nil, err
	}

	return &StudentLedger{
		Student:   student,
		Status:    student.FeeStatus(),
		Payments:  payments,
		Discounts: discounts,
	}, nil
}
