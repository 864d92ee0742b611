package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/internal/domain/enum"
	"github.com/feetrack/feetrack-api/internal/infrastructure/repository/memory"
)

type reportTestSetup struct {
	students *memory.StudentRepository
	payments *memory.PaymentRepository
	svc      *ReportService
}

func newReportTestSetup(t *testing.T) *reportTestSetup {
	t.Helper()

	students := memory.NewStudentRepository()
	payments := memory.NewPaymentRepository(students)
	return &reportTestSetup{
		students: students,
		payments: payments,
		svc:      NewReportService(students, payments),
	}
}

func (s *reportTestSetup) seedStudent(t *testing.T, admissionNumber, className, section string, totalFee, paidAmount int64) *entity.Student {
	t.Helper()

	student := &entity.Student{
		FirstName:       "Ravi",
		AdmissionNumber: admissionNumber,
		ClassName:       className,
		Section:         section,
		AcademicYear:    "2025-26",
		TotalFee:        totalFee,
		PaidAmount:      paidAmount,
		PendingAmount:   totalFee - paidAmount,
		IsActive:        true,
	}
	require.NoError(t, s.students.Create(context.Background(), student))
	return student
}

func (s *reportTestSetup) seedPayment(t *testing.T, student *entity.Student, amount int64, method enum.PaymentMethod, status enum.PaymentStatus, paidAt time.Time) {
	t.Helper()

	payment := &entity.Payment{
		ReceiptNumber: "RCP" + paidAt.Format("20060102150405.000000"),
		StudentID:     student.ID,
		TotalAmount:   amount,
		Method:        method,
		Status:        status,
		PaymentDate:   paidAt,
		AcademicYear:  student.AcademicYear,
	}
	require.NoError(t, s.payments.CreateWithLedger(context.Background(), payment, student))
}

func TestPercentOf(t *testing.T) {
	tests := []struct {
		part, whole int64
		want        int
	}{
		{0, 0, 0},
		{500, 0, 0},
		{12000, 24200, 50},
		{1, 3, 33},
		{2, 3, 67},
		{24200, 24200, 100},
		{30000, 24200, 124}, // over-collection reads above 100
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, percentOf(tt.part, tt.whole), "percentOf(%d, %d)", tt.part, tt.whole)
	}
}

func TestGetCollectionOverview(t *testing.T) {
	ctx := context.Background()
	setup := newReportTestSetup(t)
	setup.seedStudent(t, "ADM-1", "9th Grade", "A", 24200, 12000)
	setup.seedStudent(t, "ADM-2", "9th Grade", "B", 24200, 24200)
	setup.seedStudent(t, "ADM-3", "10th Grade", "A", 26000, 0)

	overview, err := setup.svc.GetCollectionOverview(ctx, "2025-26", "", "")
	require.NoError(t, err)

	assert.Equal(t, 3, overview.StudentCount)
	assert.Equal(t, int64(74400), overview.TotalFeeAmount)
	assert.Equal(t, int64(36200), overview.CollectedAmount)
	assert.Equal(t, int64(38200), overview.PendingAmount)
	assert.Equal(t, 49, overview.CollectionPercentage)

	t.Run("narrowed to one class", func(t *testing.T) {
		overview, err := setup.svc.GetCollectionOverview(ctx, "2025-26", "9th Grade", "")
		require.NoError(t, err)
		assert.Equal(t, 2, overview.StudentCount)
		assert.Equal(t, int64(48400), overview.TotalFeeAmount)
	})

	t.Run("empty cohort reports zeros", func(t *testing.T) {
		overview, err := setup.svc.GetCollectionOverview(ctx, "2030-31", "", "")
		require.NoError(t, err)
		assert.Equal(t, 0, overview.StudentCount)
		assert.Equal(t, 0, overview.CollectionPercentage)
	})
}

func TestGetCollectionByClass(t *testing.T) {
	ctx := context.Background()
	setup := newReportTestSetup(t)
	setup.seedStudent(t, "ADM-1", "9th Grade", "A", 10000, 5000)
	setup.seedStudent(t, "ADM-2", "9th Grade", "A", 10000, 10000)
	setup.seedStudent(t, "ADM-3", "10th Grade", "A", 12000, 3000)

	rows, err := setup.svc.GetCollectionByClass(ctx, "2025-26")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// sorted by class name
	assert.Equal(t, "10th Grade", rows[0].ClassName)
	assert.Equal(t, int64(12000), rows[0].TotalFeeAmount)
	assert.Equal(t, 25, rows[0].CollectionPercentage)

	assert.Equal(t, "9th Grade", rows[1].ClassName)
	assert.Equal(t, 2, rows[1].StudentCount)
	assert.Equal(t, int64(15000), rows[1].CollectedAmount)
	assert.Equal(t, int64(5000), rows[1].PendingAmount)
	assert.Equal(t, 75, rows[1].CollectionPercentage)
}

func TestGetCollectionBySection(t *testing.T) {
	ctx := context.Background()
	setup := newReportTestSetup(t)
	setup.seedStudent(t, "ADM-1", "9th Grade", "A", 10000, 10000)
	setup.seedStudent(t, "ADM-2", "9th Grade", "B", 10000, 2000)
	setup.seedStudent(t, "ADM-3", "10th Grade", "A", 12000, 0)

	rows, err := setup.svc.GetCollectionBySection(ctx, "2025-26", "9th Grade")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "A", rows[0].Section)
	assert.Equal(t, 100, rows[0].CollectionPercentage)
	assert.Equal(t, "B", rows[1].Section)
	assert.Equal(t, 20, rows[1].CollectionPercentage)
}

func TestGetDefaulters(t *testing.T) {
	ctx := context.Background()
	setup := newReportTestSetup(t)
	// pending > half the total: critical
	setup.seedStudent(t, "ADM-1", "9th Grade", "A", 24200, 12000)
	// pending exactly half: overdue, not critical
	setup.seedStudent(t, "ADM-2", "9th Grade", "A", 24200, 12100)
	// fully paid: not a defaulter
	setup.seedStudent(t, "ADM-3", "9th Grade", "A", 24200, 24200)
	// advance: not a defaulter
	setup.seedStudent(t, "ADM-4", "9th Grade", "A", 10000, 12000)

	defaulters, err := setup.svc.GetDefaulters(ctx, "2025-26", "", "")
	require.NoError(t, err)
	require.Len(t, defaulters, 2)

	// most owed first
	assert.Equal(t, "ADM-1", defaulters[0].AdmissionNumber)
	assert.Equal(t, int64(12200), defaulters[0].PendingAmount)
	assert.Equal(t, DefaulterSeverityCritical, defaulters[0].Severity)

	assert.Equal(t, "ADM-2", defaulters[1].AdmissionNumber)
	assert.Equal(t, DefaulterSeverityOverdue, defaulters[1].Severity)
}

func TestGetDailyReport(t *testing.T) {
	ctx := context.Background()
	setup := newReportTestSetup(t)
	student := setup.seedStudent(t, "ADM-1", "9th Grade", "A", 50000, 0)

	day := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	setup.seedPayment(t, student, 7500, enum.PaymentMethodCash, enum.PaymentStatusCompleted, day.Add(9*time.Hour))
	setup.seedPayment(t, student, 1200, enum.PaymentMethodOnline, enum.PaymentStatusCompleted, day.Add(24*time.Hour-time.Second))
	// cancelled payments are excluded
	setup.seedPayment(t, student, 9999, enum.PaymentMethodCash, enum.PaymentStatusCancelled, day.Add(10*time.Hour))
	// midnight of the next day falls outside the window
	setup.seedPayment(t, student, 5000, enum.PaymentMethodCash, enum.PaymentStatusCompleted, day.Add(24*time.Hour))

	report, err := setup.svc.GetDailyReport(ctx, day.Add(13*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "2025-06-15", report.Date)
	assert.Equal(t, int64(8700), report.TotalCollected)
	assert.Equal(t, 2, report.TotalTransactions)

	require.Len(t, report.MethodBreakdown, 2)
	assert.Equal(t, enum.PaymentMethodCash, report.MethodBreakdown[0].Method)
	assert.Equal(t, int64(7500), report.MethodBreakdown[0].Amount)
	assert.Equal(t, 86, report.MethodBreakdown[0].Percentage)
	assert.Equal(t, enum.PaymentMethodOnline, report.MethodBreakdown[1].Method)
	assert.Equal(t, 14, report.MethodBreakdown[1].Percentage)
}

func TestGetMonthlyReport(t *testing.T) {
	ctx := context.Background()
	setup := newReportTestSetup(t)
	student := setup.seedStudent(t, "ADM-1", "9th Grade", "A", 50000, 0)

	setup.seedPayment(t, student, 7500, enum.PaymentMethodCash, enum.PaymentStatusCompleted,
		time.Date(2025, time.June, 5, 10, 0, 0, 0, time.UTC))
	setup.seedPayment(t, student, 13200, enum.PaymentMethodOnline, enum.PaymentStatusCompleted,
		time.Date(2025, time.June, 20, 16, 30, 0, 0, time.UTC))
	// July payment falls outside the window
	setup.seedPayment(t, student, 4000, enum.PaymentMethodCash, enum.PaymentStatusCompleted,
		time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC))

	report, err := setup.svc.GetMonthlyReport(ctx, 2025, time.June)
	require.NoError(t, err)

	assert.Equal(t, "2025-06", report.Month)
	assert.Equal(t, int64(20700), report.TotalCollected)
	assert.Equal(t, 2, report.TotalTransactions)
	// 20700 over June's 30 days
	assert.True(t, report.AveragePerDay.Equal(decimal.NewFromInt(690)),
		"average per day = %s", report.AveragePerDay)
}
