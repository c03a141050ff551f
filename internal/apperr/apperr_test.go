package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", cause, 1},
		{"format", Format("read", cause), 2},
		{"empty", EmptyInput("read", nil), 3},
		{"network", Network("project", cause), 4},
		{"io", IO("write", cause), 5},
		{"wrapped", fmt.Errorf("convert: %w", Network("project", cause)), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestError_Is(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("convert: %w", Network("project point 3", cause))

	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrIO)
	assert.Equal(t, KindNetwork, KindOf(err))
	assert.Equal(t, "convert: project point 3: connection refused", err.Error())
}

func TestError_NoCause(t *testing.T) {
	err := EmptyInput("parse", nil)

	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Equal(t, "parse: no wpt or rtept found in input", err.Error())
	assert.Equal(t, "empty_input", KindEmptyInput.String())
}
