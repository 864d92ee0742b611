package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/internal/domain/repository"
	"github.com/feetrack/feetrack-api/internal/infrastructure/repository/memory"
	"github.com/feetrack/feetrack-api/pkg/apperror"
	"github.com/feetrack/feetrack-api/pkg/pagination"
)

func newStudentService(t *testing.T) (*StudentService, *memory.StudentRepository, *memory.FeeStructureRepository) {
	t.Helper()

	students := memory.NewStudentRepository()
	structures := memory.NewFeeStructureRepository()
	return NewStudentService(students, structures), students, structures
}

func TestAdmitStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("opens ledger from the active fee structure", func(t *testing.T) {
		svc, _, structures := newStudentService(t)
		require.NoError(t, structures.Create(ctx, &entity.FeeStructure{
			ClassName:    "5th Grade",
			AcademicYear: "2025-26",
			IsActive:     true,
			Items: []entity.FeeStructureItem{
				{FeeCategoryID: uuid.New(), Amount: 15000},
				{FeeCategoryID: uuid.New(), Amount: 3500},
			},
		}))

		student, err := svc.AdmitStudent(ctx, &AdmitStudentInput{
			FirstName:       "Kiran",
			LastName:        "Patel",
			AdmissionNumber: "ADM-100",
			ClassName:       "5th Grade",
			Section:         "A",
			AcademicYear:    "2025-26",
		})
		require.NoError(t, err)

		require.NotNil(t, student.FeeStructureID)
		assert.Equal(t, int64(18500), student.TotalFee)
		assert.Equal(t, int64(0), student.PaidAmount)
		assert.Equal(t, int64(18500), student.PendingAmount)
		assert.True(t, student.IsActive)
	})

	t.Run("starts with a zero ledger when no structure matches", func(t *testing.T) {
		svc, _, _ := newStudentService(t)

		student, err := svc.AdmitStudent(ctx, &AdmitStudentInput{
			FirstName:       "Kiran",
			AdmissionNumber: "ADM-101",
			ClassName:       "5th Grade",
			AcademicYear:    "2025-26",
		})
		require.NoError(t, err)

		assert.Nil(t, student.FeeStructureID)
		assert.Equal(t, int64(0), student.TotalFee)
	})

	t.Run("rejects duplicate admission numbers", func(t *testing.T) {
		svc, _, _ := newStudentService(t)
		input := &AdmitStudentInput{
			FirstName:       "Kiran",
			AdmissionNumber: "ADM-102",
			ClassName:       "5th Grade",
			AcademicYear:    "2025-26",
		}
		_, err := svc.AdmitStudent(ctx, input)
		require.NoError(t, err)

		_, err = svc.AdmitStudent(ctx, input)
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		svc, _, _ := newStudentService(t)
		tests := []AdmitStudentInput{
			{AdmissionNumber: "ADM-103", ClassName: "5th Grade", AcademicYear: "2025-26"},
			{FirstName: "Kiran", ClassName: "5th Grade", AcademicYear: "2025-26"},
			{FirstName: "Kiran", AdmissionNumber: "ADM-103", AcademicYear: "2025-26"},
			{FirstName: "Kiran", AdmissionNumber: "ADM-103", ClassName: "5th Grade"},
		}
		for _, input := range tests {
			input := input
			_, err := svc.AdmitStudent(ctx, &input)
			assert.Error(t, err)
		}
	})
}

func TestUpdateStudent_PartialFields(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newStudentService(t)

	student, err := svc.AdmitStudent(ctx, &AdmitStudentInput{
		FirstName:       "Kiran",
		LastName:        "Patel",
		AdmissionNumber: "ADM-200",
		ClassName:       "5th Grade",
		Section:         "A",
		AcademicYear:    "2025-26",
	})
	require.NoError(t, err)

	section := "B"
	got, err := svc.UpdateStudent(ctx, &UpdateStudentInput{
		ID:      student.ID,
		Section: &section,
	})
	require.NoError(t, err)

	assert.Equal(t, "B", got.Section)
	// untouched fields survive a partial update
	assert.Equal(t, "Kiran", got.FirstName)
	assert.Equal(t, "Patel", got.LastName)
	assert.Equal(t, "5th Grade", got.ClassName)
}

func TestListStudents_FiltersAndPaginates(t *testing.T) {
	ctx := context.Background()
	svc, students, _ := newStudentService(t)

	for i, adm := range []string{"ADM-301", "ADM-302", "ADM-303"} {
		section := "A"
		if i == 2 {
			section = "B"
		}
		require.NoError(t, students.Create(ctx, &entity.Student{
			FirstName:       "Student",
			AdmissionNumber: adm,
			ClassName:       "9th Grade",
			Section:         section,
			AcademicYear:    "2025-26",
			IsActive:        true,
		}))
	}

	result, err := svc.ListStudents(ctx, &repository.StudentFilterParams{
		Section:    "A",
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 1},
		SortBy:     "admission_number",
		SortOrder:  "ASC",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.Pagination.Total)
	assert.Equal(t, 2, result.Pagination.TotalPages)
	assert.True(t, result.Pagination.HasNext)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "ADM-301", result.Items[0].AdmissionNumber)
}

func TestDeactivateStudent(t *testing.T) {
	ctx := context.Background()
	svc, students, _ := newStudentService(t)

	student, err := svc.AdmitStudent(ctx, &AdmitStudentInput{
		FirstName:       "Kiran",
		AdmissionNumber: "ADM-400",
		ClassName:       "5th Grade",
		AcademicYear:    "2025-26",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateStudent(ctx, student.ID))

	got, err := students.GetByID(ctx, student.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	t.Run("unknown student is not found", func(t *testing.T) {
		err := svc.DeactivateStudent(ctx, uuid.New())
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
	})
}
