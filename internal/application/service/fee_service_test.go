package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feetrack/feetrack-api/internal/domain/entity"
	"github.com/feetrack/feetrack-api/internal/domain/enum"
	"github.com/feetrack/feetrack-api/internal/infrastructure/repository/memory"
	"github.com/feetrack/feetrack-api/pkg/apperror"
)

func newFeeService(t *testing.T) (*FeeService, *memory.FeeCategoryRepository) {
	t.Helper()

	categories := memory.NewFeeCategoryRepository()
	structures := memory.NewFeeStructureRepository()
	return NewFeeService(categories, structures), categories
}

func seedCategory(t *testing.T, repo *memory.FeeCategoryRepository, name string) *entity.FeeCategory {
	t.Helper()

	category := &entity.FeeCategory{Name: name, IsActive: true}
	require.NoError(t, repo.Create(context.Background(), category))
	return category
}

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active category", func(t *testing.T) {
		svc, _ := newFeeService(t)

		category, err := svc.CreateCategory(ctx, &CreateCategoryInput{
			Name:          "Tuition",
			DefaultAmount: 18000,
		})
		require.NoError(t, err)
		assert.True(t, category.IsActive)
		assert.NotEqual(t, uuid.Nil, category.ID)
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		svc, _ := newFeeService(t)
		_, err := svc.CreateCategory(ctx, &CreateCategoryInput{Name: "Tuition"})
		require.NoError(t, err)

		_, err = svc.CreateCategory(ctx, &CreateCategoryInput{Name: "Tuition"})
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
	})

	t.Run("rejects negative default amounts", func(t *testing.T) {
		svc, _ := newFeeService(t)
		_, err := svc.CreateCategory(ctx, &CreateCategoryInput{Name: "Tuition", DefaultAmount: -1})
		require.Error(t, err)
	})
}

func TestCreateStructure(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with positioned items and defaults", func(t *testing.T) {
		svc, categories := newFeeService(t)
		tuition := seedCategory(t, categories, "Tuition")
		transport := seedCategory(t, categories, "Transport")

		structure, err := svc.CreateStructure(ctx, &CreateStructureInput{
			ClassName:    "9th Grade",
			AcademicYear: "2025-26",
			Items: []StructureItemInput{
				{FeeCategoryID: tuition.ID, Amount: 18000},
				{FeeCategoryID: transport.ID, Amount: 6200},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, enum.PaymentFrequencyAnnual, structure.Frequency)
		assert.Equal(t, enum.LateFeeTypeFixed, structure.LateFeeType)
		assert.Equal(t, int64(24200), structure.TotalAmount())
		require.Len(t, structure.Items, 2)
		assert.Equal(t, 0, structure.Items[0].Position)
		assert.Equal(t, 1, structure.Items[1].Position)
	})

	t.Run("one active structure per class and year", func(t *testing.T) {
		svc, categories := newFeeService(t)
		tuition := seedCategory(t, categories, "Tuition")
		input := &CreateStructureInput{
			ClassName:    "9th Grade",
			AcademicYear: "2025-26",
			Items:        []StructureItemInput{{FeeCategoryID: tuition.ID, Amount: 18000}},
		}
		_, err := svc.CreateStructure(ctx, input)
		require.NoError(t, err)

		_, err = svc.CreateStructure(ctx, input)
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
	})

	t.Run("requires at least one item", func(t *testing.T) {
		svc, _ := newFeeService(t)
		_, err := svc.CreateStructure(ctx, &CreateStructureInput{
			ClassName:    "9th Grade",
			AcademicYear: "2025-26",
		})
		require.Error(t, err)
	})

	t.Run("rejects items with unknown categories", func(t *testing.T) {
		svc, _ := newFeeService(t)
		_, err := svc.CreateStructure(ctx, &CreateStructureInput{
			ClassName:    "9th Grade",
			AcademicYear: "2025-26",
			Items:        []StructureItemInput{{FeeCategoryID: uuid.New(), Amount: 18000}},
		})
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestUpdateStructure_ReplacesItems(t *testing.T) {
	ctx := context.Background()
	svc, categories := newFeeService(t)
	tuition := seedCategory(t, categories, "Tuition")
	exam := seedCategory(t, categories, "Exam")

	structure, err := svc.CreateStructure(ctx, &CreateStructureInput{
		ClassName:    "9th Grade",
		AcademicYear: "2025-26",
		Items:        []StructureItemInput{{FeeCategoryID: tuition.ID, Amount: 18000}},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStructure(ctx, &UpdateStructureInput{
		ID: structure.ID,
		Items: []StructureItemInput{
			{FeeCategoryID: tuition.ID, Amount: 19000},
			{FeeCategoryID: exam.ID, Amount: 1200},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 2)
	assert.Equal(t, int64(20200), updated.TotalAmount())
}

func TestDeactivateStructure_StopsMatchingAdmissions(t *testing.T) {
	ctx := context.Background()
	categories := memory.NewFeeCategoryRepository()
	structures := memory.NewFeeStructureRepository()
	svc := NewFeeService(categories, structures)
	tuition := seedCategory(t, categories, "Tuition")

	structure, err := svc.CreateStructure(ctx, &CreateStructureInput{
		ClassName:    "9th Grade",
		AcademicYear: "2025-26",
		Items:        []StructureItemInput{{FeeCategoryID: tuition.ID, Amount: 18000}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateStructure(ctx, structure.ID))

	active, err := structures.GetActiveForClass(ctx, "9th Grade", "2025-26")
	require.NoError(t, err)
	assert.Nil(t, active)
}
