package pickups

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateHour(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		assert.NoError(t, ValidateHour(hour))
	}
	assert.ErrorIs(t, ValidateHour(-1), ErrInvalidHour)
	assert.ErrorIs(t, ValidateHour(24), ErrInvalidHour)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{ErrInvalidHour, http.StatusBadRequest},
		{fmt.Errorf("records: %w", ErrInvalidPage), http.StatusBadRequest},
		{ErrUnknownView, http.StatusNotFound},
		{fmt.Errorf("snapshot: %w", ErrNotLoaded), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
