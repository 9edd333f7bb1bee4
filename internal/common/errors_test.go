package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("create record: %w", NewValidationError("country", "is required"))

	assert.True(t, errors.Is(err, ErrorValidation))
	assert.False(t, errors.Is(err, ErrorConflict))

	var ve *ValidationError
	if assert.True(t, errors.As(err, &ve)) {
		assert.Equal(t, "country", ve.Field)
	}
	assert.Equal(t, "create record: country: is required", err.Error())
}

func TestValidationError_NoField(t *testing.T) {
	err := NewValidationError("", "malformed body")
	assert.Equal(t, "malformed body", err.Error())
}
