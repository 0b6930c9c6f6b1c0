package pipeline

import (
	"errors"
	"net/http"
)

// Kind classifies pipeline failures for HTTP mapping.
type Kind int

const (
	KindInternal     Kind = iota // anything unclassified, 500
	KindInvalidInput             // bad content type, 400
	KindNotFound                 // missing solar field, 404
	KindInference                // model failure, 500
)

// Error is the typed failure every pipeline stage reports. Message is safe
// to show to callers; Err preserves the underlying cause for diagnostics.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps an error to the HTTP status the /predict contract defines.
func StatusCode(err error) int {
	var pe *Error
	if errors.As(err, &pe) {
		switch pe.Kind {
		case KindInvalidInput:
			return http.StatusBadRequest
		case KindNotFound:
			return http.StatusNotFound
		}
	}
	return http.StatusInternalServerError
}

// UserMessage returns the caller-visible detail string. Internal causes stay
// in the logs; invalid-input and not-found messages are safe to surface.
func UserMessage(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		switch pe.Kind {
		case KindInvalidInput, KindNotFound, KindInference:
			return pe.Message
		}
	}
	return "internal server error"
}
