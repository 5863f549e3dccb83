package service

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
	ErrConflict   = errors.New("conflict")   // 400, duplicates
	ErrForbidden  = errors.New("forbidden")  // 403
)

var kinds = []error{ErrValidation, ErrNotFound, ErrConflict, ErrForbidden}

// Message returns the client-facing text of an error built with
// fmt.Errorf("%w: text", ErrX).
func Message(err error) string {
	msg := err.Error()
	for _, k := range kinds {
		if !errors.Is(err, k) {
			continue
		}
		prefix := k.Error() + ": "
		if i := strings.Index(msg, prefix); i >= 0 {
			return msg[i+len(prefix):]
		}
	}
	return msg
}

func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	}
	return err
}

// HTTPStatus maps a service error to its HTTP status code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
