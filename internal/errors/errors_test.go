package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := AuthFailure("anonymous sign-in rejected", errors.New("api key invalid"))
	assert.Equal(t, "anonymous sign-in rejected: api key invalid", err.Error())

	bare := Timeout("greeting request timed out")
	assert.Equal(t, "greeting request timed out", bare.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Transport("greeting request failed", cause)

	assert.ErrorIs(t, err, cause)
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"auth failure", AuthFailure("x", nil), ErrCodeAuthFailure},
		{"sign-out failure", SignOutFailure("x", nil), ErrCodeSignOutFailure},
		{"timeout", Timeout("x"), ErrCodeTimeout},
		{"transport", Transport("x", nil), ErrCodeTransport},
		{"server status", ServerStatus("x"), ErrCodeServerStatus},
		{"validation", Validationf("bad %s", "input"), ErrCodeValidation},
		{"wrapped", fmt.Errorf("outer: %w", Timeout("x")), ErrCodeTimeout},
		{"plain error", errors.New("boom"), ErrCodeInternal},
		{"nil cause internal", Internal("x", nil), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("fetch: %w", ServerStatus("status 500"))

	assert.True(t, IsCode(err, ErrCodeServerStatus))
	assert.False(t, IsCode(err, ErrCodeTimeout))
	assert.False(t, IsCode(errors.New("boom"), ErrCodeServerStatus))
}
