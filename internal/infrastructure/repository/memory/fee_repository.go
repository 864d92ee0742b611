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

// FeeCategoryRepository is an in-memory FeeCategoryRepository
type FeeCategoryRepository struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]entity.FeeCategory
}

// NewFeeCategoryRepository creates an empty in-memory fee category repository
func NewFeeCategoryRepository() *FeeCategoryRepository {
	return &FeeCategoryRepository{categories: make(map[uuid.UUID]entity.FeeCategory)}
}

func (r *FeeCategoryRepository) Create(ctx context.Context, category *entity.FeeCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}
	r.categories[category.ID] = *category
	return nil
}

func (r *FeeCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FeeCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *FeeCategoryRepository) GetByName(ctx context.Context, name string) (*entity.FeeCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *FeeCategoryRepository) Update(ctx context.Context, category *entity.FeeCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	category.UpdatedAt = time.Now()
	r.categories[category.ID] = *category
	return nil
}

func (r *FeeCategoryRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.categories[id]
	if !ok {
		return nil
	}
	c.IsActive = false
	r.categories[id] = c
	return nil
}

func (r *FeeCategoryRepository) List(ctx context.Context, params *domainRepo.FeeCategoryFilterParams) ([]entity.FeeCategory, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []entity.FeeCategory
	for _, c := range r.categories {
		if params.Search != "" &&
			!strings.Contains(strings.ToLower(c.Name), strings.ToLower(params.Search)) {
			continue
		}
		if params.IsActive != nil && c.IsActive != *params.IsActive {
			continue
		}
		matched = append(matched, c)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := int64(len(matched))
	params.Pagination.Validate()
	matched = window(matched, params.Pagination.Offset(), params.Pagination.PerPage)
	return matched, total, nil
}

// FeeStructureRepository is an in-memory FeeStructureRepository
type FeeStructureRepository struct {
	mu         sync.RWMutex
	structures map[uuid.UUID]entity.FeeStructure
}

// NewFeeStructureRepository creates an empty in-memory fee structure repository
func NewFeeStructureRepository() *FeeStructureRepository {
	return &FeeStructureRepository{structures: make(map[uuid.UUID]entity.FeeStructure)}
}

func (r *FeeStructureRepository) Create(ctx context.Context, structure *entity.FeeStructure) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if structure.ID == uuid.Nil {
		structure.ID = uuid.New()
	}
	if structure.CreatedAt.IsZero() {
		structure.CreatedAt = time.Now()
	}
	for i := range structure.Items {
		if structure.Items[i].ID == uuid.Nil {
			structure.Items[i].ID = uuid.New()
		}
		structure.Items[i].FeeStructureID = structure.ID
		structure.Items[i].Position = i
	}
	r.structures[structure.ID] = *structure
	return nil
}

func (r *FeeStructureRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.structures[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *FeeStructureRepository) GetActiveForClass(ctx context.Context, className, academicYear string) (*entity.FeeStructure, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.structures {
		if s.IsActive && s.ClassName == className && s.AcademicYear == academicYear {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (r *FeeStructureRepository) Update(ctx context.Context, structure *entity.FeeStructure) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	structure.UpdatedAt = time.Now()
	r.structures[structure.ID] = *structure
	return nil
}

func (r *FeeStructureRepository) ReplaceItems(ctx context.Context, structureID uuid.UUID, items []entity.FeeStructureItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.structures[structureID]
	if !ok {
		return nil
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].FeeStructureID = structureID
		items[i].Position = i
	}
	s.Items = items
	s.UpdatedAt = time.Now()
	r.structures[structureID] = s
	return nil
}

func (r *FeeStructureRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.structures[id]
	if !ok {
		return nil
	}
	s.IsActive = false
	r.structures[id] = s
	return nil
}

func (r *FeeStructureRepository) List(ctx context.Context, params *domainRepo.FeeStructureFilterParams) ([]entity.FeeStructure, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []entity.FeeStructure
	for _, s := range r.structures {
		if params.ClassName != "" && s.ClassName != params.ClassName {
			continue
		}
		if params.AcademicYear != "" && s.AcademicYear != params.AcademicYear {
			continue
		}
		if params.IsActive != nil && s.IsActive != *params.IsActive {
			continue
		}
		matched = append(matched, s)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].AcademicYear != matched[j].AcademicYear {
			return matched[i].AcademicYear > matched[j].AcademicYear
		}
		return matched[i].ClassName < matched[j].ClassName
	})

	total := int64(len(matched))
	params.Pagination.Validate()
	matched = window(matched, params.Pagination.Offset(), params.Pagination.PerPage)
	return matched, total, nil
}
