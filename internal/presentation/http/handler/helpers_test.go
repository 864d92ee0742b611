package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feetrack/feetrack-api/pkg/apperror"
)

func TestBindingError(t *testing.T) {
	t.Run("field rule failures carry per-field errors", func(t *testing.T) {
		v := validator.New()
		err := v.Struct(struct {
			FirstName    string `validate:"required"`
			AcademicYear string `validate:"required"`
		}{})
		require.Error(t, err)

		appErr := apperror.GetAppError(bindingError(err))
		assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
		require.Len(t, appErr.Errors, 2)
		assert.Equal(t, "FirstName", appErr.Errors[0].Field)
		assert.Contains(t, appErr.Errors[0].Message, "required")
		assert.Equal(t, "AcademicYear", appErr.Errors[1].Field)
	})

	t.Run("malformed bodies stay a plain bad request", func(t *testing.T) {
		appErr := apperror.GetAppError(bindingError(errors.New("unexpected EOF")))
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Empty(t, appErr.Errors)
	})
}
