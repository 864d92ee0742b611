// Package memory provides in-memory implementations of the domain repository
// interfaces. They back service tests and mirror the Postgres repositories'
// filter semantics exactly: conjunction across set fields, case-insensitive
// substring search, explicit sort before pagination, and fresh recomputation on
// every call.
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

// StudentRepository is an in-memory StudentRepository
type StudentRepository struct {
	mu       sync.RWMutex
	students map[uuid.UUID]entity.Student
}

// NewStudentRepository creates an empty in-memory student repository
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{students: make(map[uuid.UUID]entity.Student)}
}

func (r *StudentRepository) Create(ctx context.Context, student *entity.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}
	if student.CreatedAt.IsZero() {
		student.CreatedAt = time.Now()
	}
	student.UpdatedAt = time.Now()
	r.students[student.ID] = *student
	return nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.students[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *StudentRepository) GetByAdmissionNumber(ctx context.Context, admissionNumber string) (*entity.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.students {
		if s.AdmissionNumber == admissionNumber {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (r *StudentRepository) Update(ctx context.Context, student *entity.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	student.UpdatedAt = time.Now()
	r.students[student.ID] = *student
	return nil
}

// apply mutates the stored student under the write lock. Used by the payment
// repository to keep ledger writes atomic with payment creation.
func (r *StudentRepository) apply(id uuid.UUID, fn func(*entity.Student)) bool {
	s, ok := r.students[id]
	if !ok {
		return false
	}
	fn(&s)
	s.UpdatedAt = time.Now()
	r.students[id] = s
	return true
}

func (r *StudentRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.apply(id, func(s *entity.Student) { s.IsActive = false })
	return nil
}

func (r *StudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.students, id)
	return nil
}

func (r *StudentRepository) List(ctx context.Context, params *domainRepo.StudentFilterParams) ([]entity.Student, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []entity.Student
	for _, s := range r.students {
		if params.Search != "" {
			q := strings.ToLower(params.Search)
			if !strings.Contains(strings.ToLower(s.FirstName), q) &&
				!strings.Contains(strings.ToLower(s.LastName), q) &&
				!strings.Contains(strings.ToLower(s.AdmissionNumber), q) {
				continue
			}
		}
		if params.ClassName != "" && s.ClassName != params.ClassName {
			continue
		}
		if params.Section != "" && s.Section != params.Section {
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

	sortStudents(matched, params.SortBy, params.SortOrder)
	total := int64(len(matched))

	params.Pagination.Validate()
	matched = window(matched, params.Pagination.Offset(), params.Pagination.PerPage)
	return matched, total, nil
}

func (r *StudentRepository) ListCohort(ctx context.Context, academicYear, className, section string) ([]entity.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []entity.Student
	for _, s := range r.students {
		if !s.IsActive || s.AcademicYear != academicYear {
			continue
		}
		if className != "" && s.ClassName != className {
			continue
		}
		if section != "" && s.Section != section {
			continue
		}
		matched = append(matched, s)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].ClassName != matched[j].ClassName {
			return matched[i].ClassName < matched[j].ClassName
		}
		if matched[i].Section != matched[j].Section {
			return matched[i].Section < matched[j].Section
		}
		return matched[i].AdmissionNumber < matched[j].AdmissionNumber
	})
	return matched, nil
}

func (r *StudentRepository) Count(ctx context.Context, academicYear string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, s := range r.students {
		if !s.IsActive {
			continue
		}
		if academicYear != "" && s.AcademicYear != academicYear {
			continue
		}
		total++
	}
	return total, nil
}

func sortStudents(students []entity.Student, sortBy, sortOrder string) {
	asc := sortOrder == "ASC" || sortOrder == "asc"
	sort.Slice(students, func(i, j int) bool {
		a, b := students[i], students[j]
		if !asc {
			a, b = b, a
		}
		switch sortBy {
		case "admission_number":
			return a.AdmissionNumber < b.AdmissionNumber
		case "first_name":
			return a.FirstName < b.FirstName
		case "pending_amount":
			if a.PendingAmount != b.PendingAmount {
				return a.PendingAmount < b.PendingAmount
			}
			return a.AdmissionNumber < b.AdmissionNumber
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			// deterministic tie-break so pagination windows never overlap
			return a.AdmissionNumber < b.AdmissionNumber
		}
	})
}

// window slices out one page, clamping to the collection bounds.
func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
