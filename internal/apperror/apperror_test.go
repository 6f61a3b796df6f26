package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{"NotFound wraps ErrNotFound", NotFound("laptop", 7), ErrNotFound, true},
		{"ValidationFailed wraps ErrValidation", ValidationFailed("name", "Name is required."), ErrValidation, true},
		{"Conflict wraps ErrConflict", Conflict("laptop", 7), ErrConflict, true},
		{"NotFound is not ErrValidation", NotFound("laptop", 7), ErrValidation, false},
		{"wrapped NotFound still matches", fmt.Errorf("get: %w", NotFound("laptop", 7)), ErrNotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMatch, errors.Is(tt.err, tt.target))
		})
	}
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "laptop not found with id 7", NotFound("laptop", 7).Error())
	assert.Equal(t, "laptop conflict with id 3", Conflict("laptop", 3).Error())

	v := ValidationFailed("price", "Price must be a number.")
	assert.Equal(t, "Price must be a number.", v.Error())
	assert.Equal(t, "price", v.Field)
}
