package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/internal/domain/enum"
	"github.com/feetrack/feetrack-api/internal/domain/repository"
)

// ReportService rolls ledger state up into collection reports. All reports are
// read-only snapshots recomputed from current entity state on every call.
// Money totals stay in integer rupees; percentages and per-day averages go
// through decimal arithmetic so nothing drifts, and every division guards the
// zero denominator by reporting 0.
type ReportService struct {
	studentRepo repository.StudentRepository
	paymentRepo repository.PaymentRepository
}

// NewReportService creates a new report service
func NewReportService(studentRepo repository.StudentRepository, paymentRepo repository.PaymentRepository) *ReportService {
	return &ReportService{studentRepo: studentRepo, paymentRepo: paymentRepo}
}

// percentOf returns round(100*part/whole) as an integer, 0 when whole is 0.
func percentOf(part, whole int64) int {
	if whole == 0 {
		return 0
	}
	p := decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(whole)).
		Round(0)
	return int(p.IntPart())
}

// CollectionOverview summarises a cohort's ledger state
type CollectionOverview struct {
	AcademicYear         string `json:"academic_year"`
	ClassName            string `json:"class_name,omitempty"`
	Section              string `json:"section,omitempty"`
	StudentCount         int    `json:"student_count"`
	TotalFeeAmount       int64  `json:"total_fee_amount"`
	CollectedAmount      int64  `json:"collected_amount"`
	PendingAmount        int64  `json:"pending_amount"`
	CollectionPercentage int    `json:"collection_percentage"`
}

// GetCollectionOverview computes overall totals for the cohort selected by
// academic year and optional class/section.
func (s *ReportService) GetCollectionOverview(ctx context.Context, academicYear, className, section string) (*CollectionOverview, error) {
	students, err := s.studentRepo.ListCohort(ctx, academicYear, className, section)
	if err != nil {
		return nil, err
	}

	overview := &CollectionOverview{
		AcademicYear: academicYear,
		ClassName:    className,
		Section:      section,
		StudentCount: len(students),
	}
	for _, st := range students {
		overview.TotalFeeAmount += st.TotalFee
		overview.CollectedAmount += st.PaidAmount
	}
	overview.PendingAmount = overview.TotalFeeAmount - overview.CollectedAmount
	overview.CollectionPercentage = percentOf(overview.CollectedAmount, overview.TotalFeeAmount)
	return overview, nil
}

// ClassCollection is one class's slice of the cohort report
type ClassCollection struct {
	ClassName            string `json:"class_name"`
	StudentCount         int    `json:"student_count"`
	TotalFeeAmount       int64  `json:"total_fee_amount"`
	CollectedAmount      int64  `json:"collected_amount"`
	PendingAmount        int64  `json:"pending_amount"`
	CollectionPercentage int    `json:"collection_percentage"`
}

// GetCollectionByClass groups the year's cohort by class
func (s *ReportService) GetCollectionByClass(ctx context.Context, academicYear string) ([]ClassCollection, error) {
	students, err := s.studentRepo.ListCohort(ctx, academicYear, "", "")
	if err != nil {
		return nil, err
	}

	byClass := make(map[string]*ClassCollection)
	var order []string
	for _, st := range students {
		row, ok := byClass[st.ClassName]
		if !ok {
			row = &ClassCollection{ClassName: st.ClassName}
			byClass[st.ClassName] = row
			order = append(order, st.ClassName)
		}
		row.StudentCount++
		row.TotalFeeAmount += st.TotalFee
		row.CollectedAmount += st.PaidAmount
	}

	sort.Strings(order)
	rows := make([]ClassCollection, 0, len(order))
	for _, name := range order {
		row := byClass[name]
		row.PendingAmount = row.TotalFeeAmount - row.CollectedAmount
		row.CollectionPercentage = percentOf(row.CollectedAmount, row.TotalFeeAmount)
		rows = append(rows, *row)
	}
	return rows, nil
}

// SectionCollection is one section's slice of a class report
type SectionCollection struct {
	Section              string `json:"section"`
	StudentCount         int    `json:"student_count"`
	TotalFeeAmount       int64  `json:"total_fee_amount"`
	CollectedAmount      int64  `json:"collected_amount"`
	PendingAmount        int64  `json:"pending_amount"`
	CollectionPercentage int    `json:"collection_percentage"`
}

// GetCollectionBySection groups one class's cohort by section
func (s *ReportService) GetCollectionBySection(ctx context.Context, academicYear, className string) ([]SectionCollection, error) {
	students, err := s.studentRepo.ListCohort(ctx, academicYear, className, "")
	if err != nil {
		return nil, err
	}

	bySection := make(map[string]*SectionCollection)
	var order []string
	for _, st := range students {
		row, ok := bySection[st.Section]
		if !ok {
			row = &SectionCollection{Section: st.Section}
			bySection[st.Section] = row
			order = append(order, st.Section)
		}
		row.StudentCount++
		row.TotalFeeAmount += st.TotalFee
		row.CollectedAmount += st.PaidAmount
	}

	sort.Strings(order)
	rows := make([]SectionCollection, 0, len(order))
	for _, name := range order {
		row := bySection[name]
		row.PendingAmount = row.TotalFeeAmount - row.CollectedAmount
		row.CollectionPercentage = percentOf(row.CollectedAmount, row.TotalFeeAmount)
		rows = append(rows, *row)
	}
	return rows, nil
}

// Defaulter severity buckets. A student is critical once their pending amount
// exceeds half the total fee (strictly greater), overdue otherwise.
const (
	DefaulterSeverityCritical = "critical"
	DefaulterSeverityOverdue  = "overdue"
)

// Defaulter is one student with an outstanding balance
type Defaulter struct {
	StudentID       string `json:"student_id"`
	AdmissionNumber string `json:"admission_number"`
	Name            string `json:"name"`
	ClassName       string `json:"class_name"`
	Section         string `json:"section"`
	TotalFee        int64  `json:"total_fee"`
	PaidAmount      int64  `json:"paid_amount"`
	PendingAmount   int64  `json:"pending_amount"`
	Severity        string `json:"severity"`
}

// GetDefaulters lists students with pending balances, most owed first
func (s *ReportService) GetDefaulters(ctx context.Context, academicYear, className, section string) ([]Defaulter, error) {
	students, err := s.studentRepo.ListCohort(ctx, academicYear, className, section)
	if err != nil {
		return nil, err
	}

	var defaulters []Defaulter
	for _, st := range students {
		if st.PendingAmount <= 0 {
			continue
		}
		severity := DefaulterSeverityOverdue
		// pending > 50% of total, compared in integers to avoid rounding
		if 2*st.PendingAmount > st.TotalFee {
			severity = DefaulterSeverityCritical
		}
		defaulters = append(defaulters, Defaulter{
			StudentID:       st.ID.String(),
			AdmissionNumber: st.AdmissionNumber,
			Name:            st.FullName(),
			ClassName:       st.ClassName,
			Section:         st.Section,
			TotalFee:        st.TotalFee,
			PaidAmount:      st.PaidAmount,
			PendingAmount:   st.PendingAmount,
			Severity:        severity,
		})
	}

	sort.Slice(defaulters, func(i, j int) bool {
		if defaulters[i].PendingAmount != defaulters[j].PendingAmount {
			return defaulters[i].PendingAmount > defaulters[j].PendingAmount
		}
		return defaulters[i].AdmissionNumber < defaulters[j].AdmissionNumber
	})
	return defaulters, nil
}

// MethodBreakdown is one payment method's share of a report window
type MethodBreakdown struct {
	Method     enum.PaymentMethod `json:"method"`
	Amount     int64              `json:"amount"`
	Count      int                `json:"count"`
	Percentage int                `json:"percentage"`
}

func breakdownByMethod(payments []entity.Payment) []MethodBreakdown {
	byMethod := make(map[enum.PaymentMethod]*MethodBreakdown)
	var windowTotal int64
	for _, p := range payments {
		row, ok := byMethod[p.Method]
		if !ok {
			row = &MethodBreakdown{Method: p.Method}
			byMethod[p.Method] = row
		}
		row.Amount += p.TotalAmount
		row.Count++
		windowTotal += p.TotalAmount
	}

	rows := make([]MethodBreakdown, 0, len(byMethod))
	for _, method := range enum.PaymentMethods {
		row, ok := byMethod[method]
		if !ok {
			continue
		}
		row.Percentage = percentOf(row.Amount, windowTotal)
		rows = append(rows, *row)
	}
	return rows
}

// DailyReport summarises one day's completed payments
type DailyReport struct {
	Date              string            `json:"date"`
	TotalCollected    int64             `json:"total_collected"`
	TotalTransactions int               `json:"total_transactions"`
	MethodBreakdown   []MethodBreakdown `json:"method_breakdown"`
}

// GetDailyReport reports completed payments with payment_date in [date, date+1)
func (s *ReportService) GetDailyReport(ctx context.Context, date time.Time) (*DailyReport, error) {
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	to := from.AddDate(0, 0, 1)

	payments, err := s.paymentRepo.ListCompletedInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &DailyReport{
		Date:            from.Format("2006-01-02"),
		MethodBreakdown: breakdownByMethod(payments),
	}
	for _, p := range payments {
		report.TotalCollected += p.TotalAmount
		report.TotalTransactions++
	}
	return report, nil
}

// MonthlyReport summarises one month's completed payments
type MonthlyReport struct {
	Month             string            `json:"month"`
	TotalCollected    int64             `json:"total_collected"`
	TotalTransactions int               `json:"total_transactions"`
	AveragePerDay     decimal.Decimal   `json:"average_per_day"`
	MethodBreakdown   []MethodBreakdown `json:"method_breakdown"`
}

// GetMonthlyReport reports completed payments with payment_date in
// [month-01, next-month-01). AveragePerDay divides by the month's actual day
// count and rounds to two places.
func (s *ReportService) GetMonthlyReport(ctx context.Context, year int, month time.Month) (*MonthlyReport, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	daysInMonth := to.AddDate(0, 0, -1).Day()

	payments, err := s.paymentRepo.ListCompletedInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &MonthlyReport{
		Month:           from.Format("2006-01"),
		MethodBreakdown: breakdownByMethod(payments),
	}
	for _, p := range payments {
		report.TotalCollected += p.TotalAmount
		report.TotalTransactions++
	}
	report.AveragePerDay = decimal.NewFromInt(report.TotalCollected).
		Div(decimal.NewFromInt(int64(daysInMonth))).
		Round(2)
	return report, nil
}
