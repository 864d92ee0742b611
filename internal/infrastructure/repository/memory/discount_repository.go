package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	domainRepo "github.com/feetrack/feetrack-api/internal/domain/repository"
)

// DiscountRepository is an in-memory DiscountRepository
type DiscountRepository struct {
	mu        sync.RWMutex
	discounts map[uuid.UUID]entity.Discount
}

// NewDiscountRepository creates an empty in-memory discount repository
func NewDiscountRepository() *DiscountRepository {
	return &DiscountRepository{discounts: make(map[uuid.UUID]entity.Discount)}
}

func (r *DiscountRepository) Create(ctx context.Context, discount *entity.Discount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if discount.ID == uuid.Nil {
		discount.ID = uuid.New()
	}
	if discount.CreatedAt.IsZero() {
		discount.CreatedAt = time.Now()
	}
	r.discounts[discount.ID] = *discount
	return nil
}

func (r *DiscountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.discounts[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *DiscountRepository) Update(ctx context.Context, discount *entity.Discount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	discount.UpdatedAt = time.Now()
	r.discounts[discount.ID] = *discount
	return nil
}

func (r *DiscountRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.discounts[id]
	if !ok {
		return nil
	}
	d.IsActive = false
	d.UpdatedAt = time.Now()
	r.discounts[id] = d
	return nil
}

func (r *DiscountRepository) List(ctx context.Context, params *domainRepo.DiscountFilterParams) ([]entity.Discount, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []entity.Discount
	for _, d := range r.discounts {
		if params.StudentID != nil && d.StudentID != *params.StudentID {
			continue
		}
		if params.IsActive != nil && d.IsActive != *params.IsActive {
			continue
		}
		matched = append(matched, d)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[j].CreatedAt.Before(matched[i].CreatedAt)
	})

	total := int64(len(matched))
	params.Pagination.Validate()
	matched = window(matched, params.Pagination.Offset(), params.Pagination.PerPage)
	return matched, total, nil
}

func (r *DiscountRepository) ListActiveForStudent(ctx context.Context, studentID uuid.UUID, at time.Time) ([]entity.Discount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []entity.Discount
	for _, d := range r.discounts {
		if d.StudentID != studentID || !d.IsActive || !d.ValidAt(at) {
			continue
		}
		matched = append(matched, d)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return matched, nil
}
