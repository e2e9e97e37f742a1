package apperr

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"invalid input", InvalidInput("decode", cause), http.StatusBadRequest},
		{"not found", NotFound("find", "abc"), http.StatusNotFound},
		{"storage", Storage("insert", cause), http.StatusInternalServerError},
		{"upstream", Upstream("weather", nil), http.StatusInternalServerError},
		{"unknown", context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Storage("insert batch", context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "insert batch: storage failure: context deadline exceeded", err.Error())
}

func TestNotFoundIsNotStorage(t *testing.T) {
	err := NotFound("find match", "missing-id")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrStorage)
}
