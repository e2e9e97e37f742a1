// Package apperr holds the error kinds shared by the HTTP handlers and the stores.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrStorage      = errors.New("storage failure")
	ErrUpstream     = errors.New("upstream service failure")
)

// InvalidInput wraps err as a client fault.
func InvalidInput(op string, err error) error { return wrap(op, ErrInvalidInput, err) }

// NotFound reports that no record matched what.
func NotFound(op, what string) error { return fmt.Errorf("%s: %w: %s", op, ErrNotFound, what) }

// Storage wraps a backend failure.
func Storage(op string, err error) error { return wrap(op, ErrStorage, err) }

// Upstream wraps a third-party API failure.
func Upstream(op string, err error) error { return wrap(op, ErrUpstream, err) }

func wrap(op string, kind, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", op, kind)
	}
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// Status maps an error to the HTTP status code a handler should answer with.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
