package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	domainRepo "github.com/feetrack/feetrack-api/internal/domain/repository"
)

// ClassRepository is an in-memory ClassRepository
type ClassRepository struct {
	mu      sync.RWMutex
	classes map[uuid.UUID]entity.Class
}

// NewClassRepository creates an empty in-memory class repository
func NewClassRepository() *ClassRepository {
	return &ClassRepository{classes: make(map[uuid.UUID]entity.Class)}
}

func (r *ClassRepository) Create(ctx context.Context, class *entity.Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if class.ID == uuid.Nil {
		class.ID = uuid.New()
	}
	if class.CreatedAt.IsZero() {
		class.CreatedAt = time.Now()
	}
	for i := range class.Sections {
		if class.Sections[i].ID == uuid.Nil {
			class.Sections[i].ID = uuid.New()
		}
		class.Sections[i].ClassID = class.ID
	}
	r.classes[class.ID] = *class
	return nil
}

func (r *ClassRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.classes[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ClassRepository) GetByNameAndYear(ctx context.Context, name, academicYear string) (*entity.Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.classes {
		if c.Name == name && c.AcademicYear == academicYear {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ClassRepository) Update(ctx context.Context, class *entity.Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	class.UpdatedAt = time.Now()
	r.classes[class.ID] = *class
	return nil
}

func (r *ClassRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.classes[id]
	if !ok {
		return nil
	}
	c.IsActive = false
	r.classes[id] = c
	return nil
}

func (r *ClassRepository) List(ctx context.Context, params *domainRepo.ClassFilterParams) ([]entity.Class, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []entity.Class
	for _, c := range r.classes {
		if params.Search != "" &&
			!strings.Contains(strings.ToLower(c.Name), strings.ToLower(params.Search)) {
			continue
		}
		if params.AcademicYear != "" && c.AcademicYear != params.AcademicYear {
			continue
		}
		if params.IsActive != nil && c.IsActive != *params.IsActive {
			continue
		}
		matched = append(matched, c)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].GradeLevel != matched[j].GradeLevel {
			return matched[i].GradeLevel < matched[j].GradeLevel
		}
		return matched[i].Name < matched[j].Name
	})

	total := int64(len(matched))
	params.Pagination.Validate()
	matched = window(matched, params.Pagination.Offset(), params.Pagination.PerPage)
	return matched, total, nil
}

func (r *ClassRepository) Count(ctx context.Context, academicYear string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, c := range r.classes {
		if !c.IsActive {
			continue
		}
		if academicYear != "" && c.AcademicYear != academicYear {
			continue
		}
		total++
	}
	return total, nil
}
