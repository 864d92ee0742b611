package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/internal/domain/enum"
	domainRepo "github.com/feetrack/feetrack-api/internal/domain/repository"
)

// PaymentRepository is an in-memory PaymentRepository. It holds a reference to
// the student repository so CreateWithLedger can update the ledger under the
// same critical section, matching the Postgres transaction.
type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[uuid.UUID]entity.Payment
	students *StudentRepository
}

// NewPaymentRepository creates an empty in-memory payment repository
func NewPaymentRepository(students *StudentRepository) *PaymentRepository {
	return &PaymentRepository{
		payments: make(map[uuid.UUID]entity.Payment),
		students: students,
	}
}

func (r *PaymentRepository) CreateWithLedger(ctx context.Context, payment *entity.Payment, student *entity.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.students.mu.Lock()
	defer r.students.mu.Unlock()

	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}
	for i := range payment.LineItems {
		if payment.LineItems[i].ID == uuid.Nil {
			payment.LineItems[i].ID = uuid.New()
		}
		payment.LineItems[i].PaymentID = payment.ID
	}
	r.payments[payment.ID] = *payment

	r.students.apply(student.ID, func(s *entity.Student) {
		s.PaidAmount = student.PaidAmount
		s.PendingAmount = student.PendingAmount
	})
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *PaymentRepository) GetByReceiptNumber(ctx context.Context, receiptNumber string) (*entity.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.payments {
		if p.ReceiptNumber == receiptNumber {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[id]
	if !ok {
		return nil
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	r.payments[id] = p
	return nil
}

func (r *PaymentRepository) List(ctx context.Context, params *domainRepo.PaymentFilterParams) ([]entity.Payment, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []entity.Payment
	for _, p := range r.payments {
		if params.Search != "" &&
			!strings.Contains(strings.ToLower(p.ReceiptNumber), strings.ToLower(params.Search)) {
			continue
		}
		if params.StudentID != nil && p.StudentID != *params.StudentID {
			continue
		}
		if params.Method != nil && p.Method != *params.Method {
			continue
		}
		if params.Status != nil && p.Status != *params.Status {
			continue
		}
		if params.AcademicYear != "" && p.AcademicYear != params.AcademicYear {
			continue
		}
		if params.StartDate != nil && p.PaymentDate.Before(*params.StartDate) {
			continue
		}
		if params.EndDate != nil && !p.PaymentDate.Before(*params.EndDate) {
			continue
		}
		matched = append(matched, p)
	}

	asc := params.SortOrder == "ASC" || params.SortOrder == "asc"
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !asc {
			a, b = b, a
		}
		if !a.PaymentDate.Equal(b.PaymentDate) {
			return a.PaymentDate.Before(b.PaymentDate)
		}
		return a.ReceiptNumber < b.ReceiptNumber
	})

	total := int64(len(matched))
	params.Pagination.Validate()
	matched = window(matched, params.Pagination.Offset(), params.Pagination.PerPage)
	return matched, total, nil
}

func (r *PaymentRepository) ListCompletedInRange(ctx context.Context, from, to time.Time) ([]entity.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []entity.Payment
	for _, p := range r.payments {
		if p.Status != enum.PaymentStatusCompleted {
			continue
		}
		if p.PaymentDate.Before(from) || !p.PaymentDate.Before(to) {
			continue
		}
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].PaymentDate.Before(matched[j].PaymentDate)
	})
	return matched, nil
}

func (r *PaymentRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []entity.Payment
	for _, p := range r.payments {
		if p.StudentID == studentID {
			matched = append(matched, p)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[j].PaymentDate.Before(matched[i].PaymentDate)
	})
	return matched, nil
}
