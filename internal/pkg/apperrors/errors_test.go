package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "With Code",
			appError: &AppError{
				Code:    "TEST_CODE",
				Message: "This is a test error",
			},
			expected: "[TEST_CODE] This is a test error",
		},
		{
			name: "Without Code",
			appError: &AppError{
				Message: "This is a test error without code",
			},
			expected: "This is a test error without code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestWrapDatabaseError(t *testing.T) {
	cause := errors.New("connection reset")
	err := WrapDatabaseError(cause, "failed to load loan")

	assert.True(t, errors.Is(err, ErrDatabase))
	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "DB_ERROR", appErr.Code)
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("phone", "Phone number must be valid")

	assert.True(t, errors.Is(err, ErrValidation))
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "phone", ve.Field)
	assert.Contains(t, err.Error(), "validation failed for field 'phone'")
}

func TestValidationErrors(t *testing.T) {
	t.Run("empty set is nil", func(t *testing.T) {
		var errs ValidationErrors
		assert.NoError(t, errs.OrNil())
	})

	t.Run("collects every field and matches ErrValidation", func(t *testing.T) {
		errs := ValidationErrors{}.
			Add("name", "Name is required").
			Add("phone", "Phone number must be valid")

		err := fmt.Errorf("create customer: %w", errs.OrNil())

		assert.True(t, errors.Is(err, ErrValidation))
		var got ValidationErrors
		assert.True(t, errors.As(err, &got))
		assert.Len(t, got, 2)
		assert.Equal(t, "phone", got[1].Field)
		assert.Contains(t, err.Error(), "name: Name is required; phone: Phone number must be valid")
	})
}
