package recognition

import (
	"errors"
	"net/http"
)

// Domain errors for recognition operations.
var (
	ErrInvalidRequest = errors.New("invalid request body")
	ErrMissingImage   = errors.New("missing image")
	ErrInvalidImage   = errors.New("invalid image")
	ErrTooLarge       = errors.New("request exceeds maximum upload size")
	ErrBusy           = errors.New("recognizer at capacity")
	ErrRecognition    = errors.New("recognition failed")
)

// MapHTTPStatus maps recognition domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidRequest) || errors.Is(err, ErrMissingImage) || errors.Is(err, ErrInvalidImage) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrBusy) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
