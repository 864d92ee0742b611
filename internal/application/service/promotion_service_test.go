package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/internal/infrastructure/repository/memory"
	"github.com/feetrack/feetrack-api/pkg/apperror"
)

func TestNextGrade(t *testing.T) {
	tests := []struct {
		className string
		want      string
		ok        bool
	}{
		{"Nursery", "LKG", true},
		{"UKG", "1st Grade", true},
		{"9th Grade", "10th Grade", true},
		{"12th Grade", GradeGraduated, true},
		{"Graduated", "", false},
		{"Playgroup", "", false},
	}
	for _, tt := range tests {
		got, ok := NextGrade(tt.className)
		assert.Equal(t, tt.ok, ok, "NextGrade(%q)", tt.className)
		assert.Equal(t, tt.want, got, "NextGrade(%q)", tt.className)
	}
}

func seedPromotionStudent(t *testing.T, repo *memory.StudentRepository, admissionNumber, className, section string) *entity.Student {
	t.Helper()

	student := &entity.Student{
		FirstName:       "Meera",
		AdmissionNumber: admissionNumber,
		ClassName:       className,
		Section:         section,
		AcademicYear:    "2025-26",
		TotalFee:        24200,
		PaidAmount:      12000,
		PendingAmount:   12200,
		IsActive:        true,
	}
	require.NoError(t, repo.Create(context.Background(), student))
	return student
}

func TestPromoteStudent(t *testing.T) {
	ctx := context.Background()
	promotedAt := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)

	t.Run("moves to the next grade", func(t *testing.T) {
		repo := memory.NewStudentRepository()
		svc := NewPromotionService(repo)
		svc.now = func() time.Time { return promotedAt }
		student := seedPromotionStudent(t, repo, "ADM-1", "9th Grade", "A")

		got, err := svc.PromoteStudent(ctx, student.ID, "2026-27")
		require.NoError(t, err)

		assert.Equal(t, "10th Grade", got.ClassName)
		assert.Equal(t, "2026-27", got.AcademicYear)
		assert.True(t, got.IsActive)
		require.NotNil(t, got.PromotionDate)
		assert.Equal(t, promotedAt, *got.PromotionDate)

		// promotion does not touch the ledger
		assert.Equal(t, int64(24200), got.TotalFee)
		assert.Equal(t, int64(12000), got.PaidAmount)
		assert.Equal(t, int64(12200), got.PendingAmount)
	})

	t.Run("final grade graduates and deactivates", func(t *testing.T) {
		repo := memory.NewStudentRepository()
		svc := NewPromotionService(repo)
		student := seedPromotionStudent(t, repo, "ADM-2", "12th Grade", "A")

		got, err := svc.PromoteStudent(ctx, student.ID, "2026-27")
		require.NoError(t, err)

		assert.Equal(t, GradeGraduated, got.ClassName)
		assert.False(t, got.IsActive)
	})

	t.Run("class outside the grade sequence is an error", func(t *testing.T) {
		repo := memory.NewStudentRepository()
		svc := NewPromotionService(repo)
		student := seedPromotionStudent(t, repo, "ADM-3", "Evening Batch", "A")

		_, err := svc.PromoteStudent(ctx, student.ID, "2026-27")
		require.Error(t, err)
		assert.True(t, apperror.IsAppError(err))
	})
}

func TestPromoteCohort(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStudentRepository()
	svc := NewPromotionService(repo)

	seedPromotionStudent(t, repo, "ADM-1", "9th Grade", "A")
	seedPromotionStudent(t, repo, "ADM-2", "9th Grade", "B")
	seedPromotionStudent(t, repo, "ADM-3", "12th Grade", "A")
	skipped := seedPromotionStudent(t, repo, "ADM-4", "Evening Batch", "A")

	result, err := svc.PromoteCohort(ctx, "2025-26", "2026-27", "", "")
	require.NoError(t, err)

	assert.Equal(t, "2026-27", result.ToAcademicYear)
	assert.Equal(t, 2, result.PromotedCount)
	assert.Equal(t, 1, result.GraduatedCount)
	assert.Equal(t, 1, result.SkippedCount)
	assert.Equal(t, []string{"ADM-4"}, result.Skipped)

	// skipped students keep their class and year
	got, err := repo.GetByID(ctx, skipped.ID)
	require.NoError(t, err)
	assert.Equal(t, "Evening Batch", got.ClassName)
	assert.Equal(t, "2025-26", got.AcademicYear)
}

func TestPromoteStudents_SkipsMissingSilently(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStudentRepository()
	svc := NewPromotionService(repo)

	a := seedPromotionStudent(t, repo, "ADM-1", "9th Grade", "A")
	b := seedPromotionStudent(t, repo, "ADM-2", "12th Grade", "A")

	result, err := svc.PromoteStudents(ctx, []uuid.UUID{a.ID, uuid.New(), b.ID}, "2026-27")
	require.NoError(t, err)

	assert.Equal(t, 1, result.PromotedCount)
	assert.Equal(t, 1, result.GraduatedCount)
	assert.Equal(t, 1, result.SkippedCount)
	// missing students are counted, never named
	assert.Empty(t, result.Skipped)
}

func TestPromoteCohort_NarrowedByClassAndSection(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStudentRepository()
	svc := NewPromotionService(repo)

	seedPromotionStudent(t, repo, "ADM-1", "9th Grade", "A")
	untouched := seedPromotionStudent(t, repo, "ADM-2", "9th Grade", "B")

	result, err := svc.PromoteCohort(ctx, "2025-26", "2026-27", "9th Grade", "A")
	require.NoError(t, err)
	assert.Equal(t, 1, result.PromotedCount)

	got, err := repo.GetByID(ctx, untouched.ID)
	require.NoError(t, err)
	assert.Equal(t, "9th Grade", got.ClassName)
	assert.Equal(t, "2025-26", got.AcademicYear)
}
