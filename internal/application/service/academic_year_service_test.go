package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/internal/infrastructure/repository/memory"
	"github.com/feetrack/feetrack-api/pkg/apperror"
)

func newAcademicYearService(t *testing.T) (*AcademicYearService, *memory.StudentRepository) {
	t.Helper()

	years := memory.NewAcademicYearRepository()
	students := memory.NewStudentRepository()
	classes := memory.NewClassRepository()
	return NewAcademicYearService(years, students, classes), students
}

func yearInput(label string, start time.Time) *CreateAcademicYearInput {
	return &CreateAcademicYearInput{
		Label:     label,
		StartDate: start,
		EndDate:   start.AddDate(1, 0, 0).AddDate(0, 0, -1),
	}
}

func TestCreateAcademicYear(t *testing.T) {
	ctx := context.Background()

	t.Run("new years start inactive", func(t *testing.T) {
		svc, _ := newAcademicYearService(t)

		year, err := svc.CreateAcademicYear(ctx, yearInput("2025-26", time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))
		require.NoError(t, err)
		assert.False(t, year.IsActive)
	})

	t.Run("labels are unique", func(t *testing.T) {
		svc, _ := newAcademicYearService(t)
		input := yearInput("2025-26", time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))
		_, err := svc.CreateAcademicYear(ctx, input)
		require.NoError(t, err)

		_, err = svc.CreateAcademicYear(ctx, input)
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
	})

	t.Run("end date must follow start date", func(t *testing.T) {
		svc, _ := newAcademicYearService(t)
		start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

		_, err := svc.CreateAcademicYear(ctx, &CreateAcademicYearInput{
			Label:     "2025-26",
			StartDate: start,
			EndDate:   start,
		})
		require.Error(t, err)
	})
}

func TestActivateAcademicYear_SingleActive(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAcademicYearService(t)

	first, err := svc.CreateAcademicYear(ctx, yearInput("2024-25", time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	second, err := svc.CreateAcademicYear(ctx, yearInput("2025-26", time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	_, err = svc.ActivateAcademicYear(ctx, first.ID)
	require.NoError(t, err)
	_, err = svc.ActivateAcademicYear(ctx, second.ID)
	require.NoError(t, err)

	active, err := svc.GetActiveAcademicYear(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-26", active.Label)

	years, err := svc.ListAcademicYears(ctx)
	require.NoError(t, err)
	activeCount := 0
	for _, y := range years {
		if y.IsActive {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)
}

func TestListAcademicYears_RefreshesCounts(t *testing.T) {
	ctx := context.Background()
	svc, students := newAcademicYearService(t)

	_, err := svc.CreateAcademicYear(ctx, yearInput("2025-26", time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	for _, adm := range []string{"ADM-1", "ADM-2"} {
		require.NoError(t, students.Create(ctx, &entity.Student{
			FirstName:       "Asha",
			AdmissionNumber: adm,
			ClassName:       "9th Grade",
			AcademicYear:    "2025-26",
			IsActive:        true,
		}))
	}

	years, err := svc.ListAcademicYears(ctx)
	require.NoError(t, err)
	require.Len(t, years, 1)
	assert.Equal(t, int64(2), years[0].StudentCount)
}
