package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
)

// AcademicYearRepository is an in-memory AcademicYearRepository
type AcademicYearRepository struct {
	mu    sync.RWMutex
	years map[uuid.UUID]entity.AcademicYear
}

// NewAcademicYearRepository creates an empty in-memory academic year repository
func NewAcademicYearRepository() *AcademicYearRepository {
	return &AcademicYearRepository{years: make(map[uuid.UUID]entity.AcademicYear)}
}

func (r *AcademicYearRepository) Create(ctx context.Context, year *entity.AcademicYear) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if year.ID == uuid.Nil {
		year.ID = uuid.New()
	}
	if year.CreatedAt.IsZero() {
		year.CreatedAt = time.Now()
	}
	r.years[year.ID] = *year
	return nil
}

func (r *AcademicYearRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.AcademicYear, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	y, ok := r.years[id]
	if !ok {
		return nil, nil
	}
	return &y, nil
}

func (r *AcademicYearRepository) GetByLabel(ctx context.Context, label string) (*entity.AcademicYear, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, y := range r.years {
		if y.Label == label {
			y := y
			return &y, nil
		}
	}
	return nil, nil
}

func (r *AcademicYearRepository) GetActive(ctx context.Context) (*entity.AcademicYear, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, y := range r.years {
		if y.IsActive {
			y := y
			return &y, nil
		}
	}
	return nil, nil
}

func (r *AcademicYearRepository) Update(ctx context.Context, year *entity.AcademicYear) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	year.UpdatedAt = time.Now()
	r.years[year.ID] = *year
	return nil
}

// Activate flips every year inactive and the target active under one lock,
// mirroring the Postgres transaction.
func (r *AcademicYearRepository) Activate(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for yid, y := range r.years {
		y.IsActive = yid == id
		r.years[yid] = y
	}
	return nil
}

func (r *AcademicYearRepository) UpdateCounts(ctx context.Context, id uuid.UUID, studentCount, classCount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	y, ok := r.years[id]
	if !ok {
		return nil
	}
	y.StudentCount = studentCount
	y.ClassCount = classCount
	r.years[id] = y
	return nil
}

func (r *AcademicYearRepository) List(ctx context.Context) ([]entity.AcademicYear, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	years := make([]entity.AcademicYear, 0, len(r.years))
	for _, y := range r.years {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool {
		return years[j].StartDate.Before(years[i].StartDate)
	})
	return years, nil
}
