package service

import (
	"context"
	"time"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/internal/domain/repository"
	"github.com/feetrack/feetrack-api/pkg/apperror"
	"github.com/feetrack/feetrack-api/pkg/pagination"
)

// DashboardService provides the front-page statistics for the active
// academic year
type DashboardService struct {
	studentRepo repository.StudentRepository
	classRepo   repository.ClassRepository
	paymentRepo repository.PaymentRepository
	yearRepo    repository.AcademicYearRepository
	now         func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	studentRepo repository.StudentRepository,
	classRepo repository.ClassRepository,
	paymentRepo repository.PaymentRepository,
	yearRepo repository.AcademicYearRepository,
) *DashboardService {
	return &DashboardService{
		studentRepo: studentRepo,
		classRepo:   classRepo,
		paymentRepo: paymentRepo,
		yearRepo:    yearRepo,
		now:         time.Now,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	AcademicYear         string           `json:"academic_year"`
	TotalStudents        int64            `json:"total_students"`
	TotalClasses         int64            `json:"total_classes"`
	TotalFeeAmount       int64            `json:"total_fee_amount"`
	CollectedAmount      int64            `json:"collected_amount"`
	PendingAmount        int64            `json:"pending_amount"`
	CollectionPercentage int              `json:"collection_percentage"`
	TodayCollected       int64            `json:"today_collected"`
	MonthCollected       int64            `json:"month_collected"`
	DefaulterCount       int              `json:"defaulter_count"`
	CriticalCount        int              `json:"critical_count"`
	RecentPayments       []entity.Payment `json:"recent_payments"`
}

// GetDashboardStats returns statistics for the active academic year
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	year, err := s.yearRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if year == nil {
		return nil, apperror.NewNotFoundError("Active academic year")
	}

	stats := &DashboardStats{AcademicYear: year.Label}

	students, err := s.studentRepo.ListCohort(ctx, year.Label, "", "")
	if err != nil {
		return nil, err
	}
	stats.TotalStudents = int64(len(students))
	for _, st := range students {
		stats.TotalFeeAmount += st.TotalFee
		stats.CollectedAmount += st.PaidAmount
		if st.PendingAmount > 0 {
			stats.DefaulterCount++
			if 2*st.PendingAmount > st.TotalFee {
				stats.CriticalCount++
			}
		}
	}
	stats.PendingAmount = stats.TotalFeeAmount - stats.CollectedAmount
	stats.CollectionPercentage = percentOf(stats.CollectedAmount, stats.TotalFeeAmount)

	classCount, err := s.classRepo.Count(ctx, year.Label)
	if err != nil {
		return nil, err
	}
	stats.TotalClasses = classCount

	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todays, err := s.paymentRepo.ListCompletedInRange(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	for _, p := range todays {
		stats.TodayCollected += p.TotalAmount
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthly, err := s.paymentRepo.ListCompletedInRange(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	for _, p := range monthly {
		stats.MonthCollected += p.TotalAmount
	}

	recent, _, err := s.paymentRepo.List(ctx, &repository.PaymentFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 5},
		SortBy:     "payment_date",
		SortOrder:  "desc",
	})
	if err != nil {
		return nil, err
	}
	stats.RecentPayments = recent

	return stats, nil
}
