package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/internal/domain/repository"
	"github.com/feetrack/feetrack-api/pkg/apperror"
	"github.com/feetrack/feetrack-api/pkg/pagination"
)

// StudentService handles student admission and record operations
type StudentService struct {
	studentRepo   repository.StudentRepository
	structureRepo repository.FeeStructureRepository
}

// NewStudentService creates a new student service
func NewStudentService(studentRepo repository.StudentRepository, structureRepo repository.FeeStructureRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo, structureRepo: structureRepo}
}

// AdmitStudentInput represents the admit student input
type AdmitStudentInput struct {
	FirstName       string
	LastName        string
	AdmissionNumber string
	ClassName       string
	Section         string
	AcademicYear    string
}

// AdmitStudent creates a new student record. When an active fee structure
// exists for the class and year it is assigned immediately, opening the
// ledger with the structure's total; otherwise the student starts with a
// zero ledger and a structure can be assigned later.
func (s *StudentService) AdmitStudent(ctx context.Context, input *AdmitStudentInput) (*entity.Student, error) {
	if input.FirstName == "" {
		return nil, apperror.NewBadRequestError("First name is required")
	}
	if input.AdmissionNumber == "" {
		return nil, apperror.NewBadRequestError("Admission number is required")
	}
	if input.ClassName == "" || input.AcademicYear == "" {
		return nil, apperror.NewBadRequestError("Class name and academic year are required")
	}

	existing, err := s.studentRepo.GetByAdmissionNumber(ctx, input.AdmissionNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Admission number already registered")
	}

	student := &entity.Student{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		AdmissionNumber: input.AdmissionNumber,
		ClassName:       input.ClassName,
		Section:         input.Section,
		AcademicYear:    input.AcademicYear,
		IsActive:        true,
	}

	structure, err := s.structureRepo.GetActiveForClass(ctx, input.ClassName, input.AcademicYear)
	if err != nil {
		return nil, err
	}
	if structure != nil {
		student.FeeStructureID = &structure.ID
		student.TotalFee = structure.TotalAmount()
		student.PendingAmount = student.TotalFee
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// GetStudent retrieves a student by ID
func (s *StudentService) GetStudent(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}
	return student, nil
}

// GetStudentByAdmissionNumber retrieves a student by admission number
func (s *StudentService) GetStudentByAdmissionNumber(ctx context.Context, admissionNumber string) (*entity.Student, error) {
	student, err := s.studentRepo.GetByAdmissionNumber(ctx, admissionNumber)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}
	return student, nil
}

// ListStudents lists students with filtering and pagination
func (s *StudentService) ListStudents(ctx context.Context, params *repository.StudentFilterParams) (*pagination.PaginatedResult[entity.Student], error) {
	students, total, err := s.studentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(students, pag), nil
}

// UpdateStudentInput represents the update student input. Ledger fields are
// deliberately absent; balances change only through ledger operations.
type UpdateStudentInput struct {
	ID        uuid.UUID
	FirstName *string
	LastName  *string
	ClassName *string
	Section   *string
}

// UpdateStudent updates a student's identity and placement fields
func (s *StudentService) UpdateStudent(ctx context.Context, input *UpdateStudentInput) (*entity.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	if input.FirstName != nil {
		student.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		student.LastName = *input.LastName
	}
	if input.ClassName != nil {
		student.ClassName = *input.ClassName
	}
	if input.Section != nil {
		student.Section = *input.Section
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// DeactivateStudent retires a student without touching their ledger history
func (s *StudentService) DeactivateStudent(ctx context.Context, id uuid.UUID) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if student == nil {
		return apperror.NewNotFoundError("Student")
	}
	return s.studentRepo.Deactivate(ctx, id)
}

// DeleteStudent removes a student record outright. Kept for data cleanup;
// DeactivateStudent is the supported retirement path.
func (s *StudentService) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if student == nil {
		return apperror.NewNotFoundError("Student")
	}
	return s.studentRepo.Delete(ctx, id)
}
