package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feetrack/feetrack-api/internal/config"
	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/internal/domain/enum"
	"github.com/feetrack/feetrack-api/internal/infrastructure/repository/memory"
	"github.com/feetrack/feetrack-api/pkg/apperror"
	"github.com/feetrack/feetrack-api/pkg/receipt"
)

type ledgerTestSetup struct {
	students   *memory.StudentRepository
	payments   *memory.PaymentRepository
	discounts  *memory.DiscountRepository
	structures *memory.FeeStructureRepository
	svc        *LedgerService
}

func newLedgerTestSetup(t *testing.T, policy config.LedgerConfig) *ledgerTestSetup {
	t.Helper()

	students := memory.NewStudentRepository()
	payments := memory.NewPaymentRepository(students)
	discounts := memory.NewDiscountRepository()
	structures := memory.NewFeeStructureRepository()

	return &ledgerTestSetup{
		students:   students,
		payments:   payments,
		discounts:  discounts,
		structures: structures,
		svc:        NewLedgerService(students, payments, discounts, structures, receipt.NewGenerator(), policy),
	}
}

func (s *ledgerTestSetup) seedStudent(t *testing.T, admissionNumber string, totalFee, paidAmount int64) *entity.Student {
	t.Helper()

	student := &entity.Student{
		FirstName:       "Asha",
		LastName:        "Rao",
		AdmissionNumber: admissionNumber,
		ClassName:       "9th Grade",
		Section:         "A",
		AcademicYear:    "2025-26",
		TotalFee:        totalFee,
		PaidAmount:      paidAmount,
		PendingAmount:   totalFee - paidAmount,
		IsActive:        true,
	}
	require.NoError(t, s.students.Create(context.Background(), student))
	return student
}

func (s *ledgerTestSetup) reload(t *testing.T, student *entity.Student) *entity.Student {
	t.Helper()

	got, err := s.students.GetByID(context.Background(), student.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	return got
}

func TestRecordPayment_AppliesToLedger(t *testing.T) {
	ctx := context.Background()
	setup := newLedgerTestSetup(t, config.LedgerConfig{})
	student := setup.seedStudent(t, "ADM-1001", 24200, 12000)

	payment, err := setup.svc.RecordPayment(ctx, &RecordPaymentInput{
		StudentID: student.ID,
		LineItems: []PaymentLineItemInput{
			{FeeType: "Tuition", Amount: 6000},
			{FeeType: "Transport", Amount: 1500},
		},
		TotalAmount: 7500,
		Method:      enum.PaymentMethodCash,
		CollectedBy: "clerk@school.test",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(payment.ReceiptNumber, "RCP"))
	assert.Equal(t, enum.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, "2025-26", payment.AcademicYear)
	assert.Len(t, payment.LineItems, 2)
	assert.Equal(t, int64(7500), payment.LineItemTotal())

	got := setup.reload(t, student)
	assert.Equal(t, int64(19500), got.PaidAmount)
	assert.Equal(t, int64(4700), got.PendingAmount)
	assert.Equal(t, got.TotalFee-got.PaidAmount, got.PendingAmount)
	assert.Equal(t, enum.FeeStatusPartial, got.FeeStatus())
}

func TestRecordPayment_OverpaymentBecomesAdvance(t *testing.T) {
	ctx := context.Background()
	setup := newLedgerTestSetup(t, config.LedgerConfig{})
	student := setup.seedStudent(t, "ADM-1002", 5000, 4000)

	_, err := setup.svc.RecordPayment(ctx, &RecordPaymentInput{
		StudentID:   student.ID,
		TotalAmount: 3000,
		Method:      enum.PaymentMethodOnline,
	})
	require.NoError(t, err)

	got := setup.reload(t, student)
	assert.Equal(t, int64(7000), got.PaidAmount)
	assert.Equal(t, int64(-2000), got.PendingAmount)
	assert.Equal(t, enum.FeeStatusAdvance, got.FeeStatus())
}

func TestRecordPayment_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	setup := newLedgerTestSetup(t, config.LedgerConfig{})
	student := setup.seedStudent(t, "ADM-1003", 10000, 0)

	tests := []struct {
		name  string
		input RecordPaymentInput
	}{
		{
			name:  "unknown method",
			input: RecordPaymentInput{StudentID: student.ID, TotalAmount: 100, Method: "barter"},
		},
		{
			name:  "zero amount",
			input: RecordPaymentInput{StudentID: student.ID, TotalAmount: 0, Method: enum.PaymentMethodCash},
		},
		{
			name:  "negative amount",
			input: RecordPaymentInput{StudentID: student.ID, TotalAmount: -50, Method: enum.PaymentMethodCash},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			_, err := setup.svc.RecordPayment(ctx, &input)
			require.Error(t, err)
			assert.True(t, apperror.IsAppError(err))
		})
	}

	// ledger untouched by rejected payments
	got := setup.reload(t, student)
	assert.Equal(t, int64(0), got.PaidAmount)
	assert.Equal(t, int64(10000), got.PendingAmount)
}

func TestRecordPayment_LineItemValidationPolicy(t *testing.T) {
	ctx := context.Background()
	mismatched := &RecordPaymentInput{
		LineItems:   []PaymentLineItemInput{{FeeType: "Tuition", Amount: 400}},
		TotalAmount: 500,
		Method:      enum.PaymentMethodCash,
	}

	t.Run("legacy default accepts mismatched totals", func(t *testing.T) {
		setup := newLedgerTestSetup(t, config.LedgerConfig{})
		student := setup.seedStudent(t, "ADM-1004", 1000, 0)

		input := *mismatched
		input.StudentID = student.ID
		payment, err := setup.svc.RecordPayment(ctx, &input)
		require.NoError(t, err)
		assert.Equal(t, int64(500), payment.TotalAmount)
		assert.Equal(t, int64(400), payment.LineItemTotal())
	})

	t.Run("validation flag rejects mismatched totals", func(t *testing.T) {
		setup := newLedgerTestSetup(t, config.LedgerConfig{ValidateLineItems: true})
		student := setup.seedStudent(t, "ADM-1005", 1000, 0)

		input := *mismatched
		input.StudentID = student.ID
		_, err := setup.svc.RecordPayment(ctx, &input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not match")

		got := setup.reload(t, student)
		assert.Equal(t, int64(0), got.PaidAmount)
	})
}

func TestRecordPayment_ReceiptNumbersAreUnique(t *testing.T) {
	ctx := context.Background()
	setup := newLedgerTestSetup(t, config.LedgerConfig{})
	student := setup.seedStudent(t, "ADM-1006", 100000, 0)

	seen := make(map[string]bool)
	for i := 0; i < 25; i++ {
		payment, err := setup.svc.RecordPayment(ctx, &RecordPaymentInput{
			StudentID:   student.ID,
			TotalAmount: 100,
			Method:      enum.PaymentMethodCash,
		})
		require.NoError(t, err)
		assert.False(t, seen[payment.ReceiptNumber], "duplicate receipt %s", payment.ReceiptNumber)
		seen[payment.ReceiptNumber] = true
	}
}

func TestApplyDiscount_RecordedWithoutNettingByDefault(t *testing.T) {
	ctx := context.Background()
	setup := newLedgerTestSetup(t, config.LedgerConfig{})
	student := setup.seedStudent(t, "ADM-2001", 20000, 5000)

	discount, err := setup.svc.ApplyDiscount(ctx, student.ID, &ApplyDiscountInput{
		Type:       enum.DiscountTypePercentage,
		Value:      10,
		Reason:     "Sibling concession",
		ApprovedBy: "principal@school.test",
	})
	require.NoError(t, err)
	assert.True(t, discount.IsActive)
	assert.Equal(t, student.ID, discount.StudentID)

	got := setup.reload(t, student)
	assert.Equal(t, int64(20000), got.TotalFee)
	assert.Equal(t, int64(15000), got.PendingAmount)
}

func TestApplyDiscount_AutoApplyNetsLedger(t *testing.T) {
	ctx := context.Background()
	setup := newLedgerTestSetup(t, config.LedgerConfig{AutoApplyDiscounts: true})

	t.Run("percentage", func(t *testing.T) {
		student := setup.seedStudent(t, "ADM-2002", 20000, 5000)

		_, err := setup.svc.ApplyDiscount(ctx, student.ID, &ApplyDiscountInput{
			Type:  enum.DiscountTypePercentage,
			Value: 10,
		})
		require.NoError(t, err)

		got := setup.reload(t, student)
		assert.Equal(t, int64(18000), got.TotalFee)
		assert.Equal(t, int64(13000), got.PendingAmount)
		assert.Equal(t, got.TotalFee-got.PaidAmount, got.PendingAmount)
	})

	t.Run("fixed", func(t *testing.T) {
		student := setup.seedStudent(t, "ADM-2003", 20000, 5000)

		_, err := setup.svc.ApplyDiscount(ctx, student.ID, &ApplyDiscountInput{
			Type:  enum.DiscountTypeFixed,
			Value: 2500,
		})
		require.NoError(t, err)

		got := setup.reload(t, student)
		assert.Equal(t, int64(17500), got.TotalFee)
		assert.Equal(t, int64(12500), got.PendingAmount)
	})

	t.Run("not yet valid discounts are stored but not applied", func(t *testing.T) {
		student := setup.seedStudent(t, "ADM-2004", 20000, 5000)
		from := time.Now().AddDate(0, 1, 0)

		_, err := setup.svc.ApplyDiscount(ctx, student.ID, &ApplyDiscountInput{
			Type:      enum.DiscountTypeFixed,
			Value:     2500,
			ValidFrom: &from,
		})
		require.NoError(t, err)

		got := setup.reload(t, student)
		assert.Equal(t, int64(20000), got.TotalFee)
	})
}

func TestApplyDiscount_Validation(t *testing.T) {
	ctx := context.Background()
	setup := newLedgerTestSetup(t, config.LedgerConfig{})
	student := setup.seedStudent(t, "ADM-2005", 20000, 0)

	tests := []struct {
		name  string
		input ApplyDiscountInput
	}{
		{"unknown type", ApplyDiscountInput{Type: "seasonal", Value: 10}},
		{"zero value", ApplyDiscountInput{Type: enum.DiscountTypeFixed, Value: 0}},
		{"percentage over 100", ApplyDiscountInput{Type: enum.DiscountTypePercentage, Value: 120}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			_, err := setup.svc.ApplyDiscount(ctx, student.ID, &input)
			require.Error(t, err)
			assert.True(t, apperror.IsAppError(err))
		})
	}
}

func TestCarryForward(t *testing.T) {
	ctx := context.Background()

	t.Run("pending balance becomes opening due", func(t *testing.T) {
		setup := newLedgerTestSetup(t, config.LedgerConfig{})
		student := setup.seedStudent(t, "ADM-3001", 5000, 3000)

		got, err := setup.svc.CarryForward(ctx, student.ID, "2026-27")
		require.NoError(t, err)

		assert.Equal(t, int64(2000), got.TotalFee)
		assert.Equal(t, int64(0), got.PaidAmount)
		assert.Equal(t, int64(2000), got.PendingAmount)
		assert.Equal(t, int64(-2000), got.CarryForwardAmount)
		assert.Equal(t, "2026-27", got.CarryForwardYear)
		require.NotNil(t, got.CarryForwardDate)
	})

	t.Run("overpaid balance becomes opening advance", func(t *testing.T) {
		setup := newLedgerTestSetup(t, config.LedgerConfig{})
		student := setup.seedStudent(t, "ADM-3002", 3000, 5000)

		got, err := setup.svc.CarryForward(ctx, student.ID, "2026-27")
		require.NoError(t, err)

		assert.Equal(t, int64(2000), got.TotalFee)
		assert.Equal(t, int64(2000), got.PaidAmount)
		assert.Equal(t, int64(0), got.PendingAmount)
		assert.Equal(t, int64(2000), got.CarryForwardAmount)
	})

	t.Run("settled ledger carries zero", func(t *testing.T) {
		setup := newLedgerTestSetup(t, config.LedgerConfig{})
		student := setup.seedStudent(t, "ADM-3003", 4000, 4000)

		got, err := setup.svc.CarryForward(ctx, student.ID, "2026-27")
		require.NoError(t, err)

		assert.Equal(t, int64(0), got.TotalFee)
		assert.Equal(t, int64(0), got.PaidAmount)
		assert.Equal(t, int64(0), got.PendingAmount)
		assert.Equal(t, int64(0), got.CarryForwardAmount)
	})

	t.Run("target year is required", func(t *testing.T) {
		setup := newLedgerTestSetup(t, config.LedgerConfig{})
		student := setup.seedStudent(t, "ADM-3004", 4000, 0)

		_, err := setup.svc.CarryForward(ctx, student.ID, "")
		require.Error(t, err)
	})
}

func TestCancelPayment(t *testing.T) {
	ctx := context.Background()
	setup := newLedgerTestSetup(t, config.LedgerConfig{})
	student := setup.seedStudent(t, "ADM-4001", 10000, 0)

	payment, err := setup.svc.RecordPayment(ctx, &RecordPaymentInput{
		StudentID:   student.ID,
		TotalAmount: 2500,
		Method:      enum.PaymentMethodCheque,
	})
	require.NoError(t, err)

	cancelled, err := setup.svc.CancelPayment(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusCancelled, cancelled.Status)

	// idempotent on repeat
	again, err := setup.svc.CancelPayment(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusCancelled, again.Status)

	// cancellation is a status flip only; the ledger is not reversed
	got := setup.reload(t, student)
	assert.Equal(t, int64(2500), got.PaidAmount)
	assert.Equal(t, int64(7500), got.PendingAmount)
}

func TestAssignFeeStructure(t *testing.T) {
	ctx := context.Background()

	t.Run("resets ledger against active structure", func(t *testing.T) {
		setup := newLedgerTestSetup(t, config.LedgerConfig{})
		student := setup.seedStudent(t, "ADM-5001", 0, 0)

		structure := &entity.FeeStructure{
			ClassName:    "9th Grade",
			AcademicYear: "2025-26",
			IsActive:     true,
			Items: []entity.FeeStructureItem{
				{FeeCategoryID: uuid.New(), Amount: 18000},
				{FeeCategoryID: uuid.New(), Amount: 6200},
			},
		}
		require.NoError(t, setup.structures.Create(ctx, structure))

		got, err := setup.svc.AssignFeeStructure(ctx, student.ID)
		require.NoError(t, err)

		require.NotNil(t, got.FeeStructureID)
		assert.Equal(t, structure.ID, *got.FeeStructureID)
		assert.Equal(t, int64(24200), got.TotalFee)
		assert.Equal(t, int64(0), got.PaidAmount)
		assert.Equal(t, int64(24200), got.PendingAmount)
	})

	t.Run("zeroes ledger when no structure matches", func(t *testing.T) {
		setup := newLedgerTestSetup(t, config.LedgerConfig{})
		student := setup.seedStudent(t, "ADM-5002", 12000, 3000)

		got, err := setup.svc.AssignFeeStructure(ctx, student.ID)
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))

		require.NotNil(t, got)
		assert.Nil(t, got.FeeStructureID)
		assert.Equal(t, int64(0), got.TotalFee)
		assert.Equal(t, int64(0), got.PendingAmount)
	})
}

func TestGetStudentLedger(t *testing.T) {
	ctx := context.Background()
	setup := newLedgerTestSetup(t, config.LedgerConfig{})
	student := setup.seedStudent(t, "ADM-6001", 10000, 0)

	for _, amount := range []int64{2000, 3000} {
		_, err := setup.svc.RecordPayment(ctx, &RecordPaymentInput{
			StudentID:   student.ID,
			TotalAmount: amount,
			Method:      enum.PaymentMethodCash,
		})
		require.NoError(t, err)
	}
	_, err := setup.svc.ApplyDiscount(ctx, student.ID, &ApplyDiscountInput{
		Type:  enum.DiscountTypeFixed,
		Value: 500,
	})
	require.NoError(t, err)

	ledger, err := setup.svc.GetStudentLedger(ctx, student.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(5000), ledger.Student.PaidAmount)
	assert.Equal(t, enum.FeeStatusPartial, ledger.Status)
	assert.Len(t, ledger.Payments, 2)
	assert.Len(t, ledger.Discounts, 1)
}
