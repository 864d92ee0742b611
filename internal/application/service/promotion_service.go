package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/internal/domain/repository"
	"github.com/feetrack/feetrack-api/pkg/apperror"
)

// GradeGraduated is the terminal class assigned when a student is promoted
// out of the final grade.
const GradeGraduated = "Graduated"

// gradeSequence maps each class to the one above it. Promotion walks this
// map; a class with no entry is left alone.
var gradeSequence = map[string]string{
	"Nursery":    "LKG",
	"LKG":        "UKG",
	"UKG":        "1st Grade",
	"1st Grade":  "2nd Grade",
	"2nd Grade":  "3rd Grade",
	"3rd Grade":  "4th Grade",
	"4th Grade":  "5th Grade",
	"5th Grade":  "6th Grade",
	"6th Grade":  "7th Grade",
	"7th Grade":  "8th Grade",
	"8th Grade":  "9th Grade",
	"9th Grade":  "10th Grade",
	"10th Grade": "11th Grade",
	"11th Grade": "12th Grade",
	"12th Grade": GradeGraduated,
}

// NextGrade returns the class a student in className moves to on promotion.
// ok is false when the class has no place in the grade sequence.
func NextGrade(className string) (string, bool) {
	next, ok := gradeSequence[className]
	return next, ok
}

// PromotionService moves students between grades at academic year boundaries.
// Promotion changes class and academic year only; ledger balances are handled
// separately through carry-forward.
type PromotionService struct {
	studentRepo repository.StudentRepository
	now         func() time.Time
}

// NewPromotionService creates a new promotion service
func NewPromotionService(studentRepo repository.StudentRepository) *PromotionService {
	return &PromotionService{studentRepo: studentRepo, now: time.Now}
}

// PromotionResult reports the outcome of a cohort promotion
type PromotionResult struct {
	ToAcademicYear string   `json:"to_academic_year"`
	PromotedCount  int      `json:"promoted_count"`
	GraduatedCount int      `json:"graduated_count"`
	SkippedCount   int      `json:"skipped_count"`
	Skipped        []string `json:"skipped,omitempty"`
}

// PromoteStudent moves a single student to the next grade in toAcademicYear
func (s *PromotionService) PromoteStudent(ctx context.Context, studentID uuid.UUID, toAcademicYear string) (*entity.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	next, ok := NextGrade(student.ClassName)
	if !ok {
		return nil, apperror.NewBadRequestError("Class has no promotion target: " + student.ClassName)
	}
	s.promote(student, next, toAcademicYear)

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// PromoteStudents promotes each listed student to the next grade in
// toAcademicYear. Missing students and students outside the grade sequence are
// skipped silently; the result carries aggregate counts only.
func (s *PromotionService) PromoteStudents(ctx context.Context, studentIDs []uuid.UUID, toAcademicYear string) (*PromotionResult, error) {
	result := &PromotionResult{ToAcademicYear: toAcademicYear}
	for _, id := range studentIDs {
		student, err := s.studentRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if student == nil {
			result.SkippedCount++
			continue
		}
		next, ok := NextGrade(student.ClassName)
		if !ok {
			result.SkippedCount++
			result.Skipped = append(result.Skipped, student.AdmissionNumber)
			continue
		}
		s.promote(student, next, toAcademicYear)
		if err := s.studentRepo.Update(ctx, student); err != nil {
			return nil, err
		}
		if next == GradeGraduated {
			result.GraduatedCount++
		} else {
			result.PromotedCount++
		}
	}
	return result, nil
}

// PromoteCohort promotes every active student of a class (optionally one
// section) from fromAcademicYear into toAcademicYear. Students whose class is
// not in the grade sequence are skipped and reported, not failed.
func (s *PromotionService) PromoteCohort(ctx context.Context, fromAcademicYear, toAcademicYear, className, section string) (*PromotionResult, error) {
	students, err := s.studentRepo.ListCohort(ctx, fromAcademicYear, className, section)
	if err != nil {
		return nil, err
	}

	result := &PromotionResult{ToAcademicYear: toAcademicYear}
	for i := range students {
		student := &students[i]
		next, ok := NextGrade(student.ClassName)
		if !ok {
			result.SkippedCount++
			result.Skipped = append(result.Skipped, student.AdmissionNumber)
			continue
		}
		s.promote(student, next, toAcademicYear)
		if err := s.studentRepo.Update(ctx, student); err != nil {
			return nil, err
		}
		if next == GradeGraduated {
			result.GraduatedCount++
		} else {
			result.PromotedCount++
		}
	}
	return result, nil
}

func (s *PromotionService) promote(student *entity.Student, nextClass, toAcademicYear string) {
	now := s.now()
	student.ClassName = nextClass
	student.AcademicYear = toAcademicYear
	student.PromotionDate = &now
	if nextClass == GradeGraduated {
		student.IsActive = false
	}
}
