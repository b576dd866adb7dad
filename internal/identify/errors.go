package identify

import "errors"

// Sentinel errors for identification calls.
var (
	// ErrServiceUnavailable indicates a transport failure or a non-success status.
	ErrServiceUnavailable = errors.New("identification service unavailable")
	// ErrMalformedResponse indicates the response lacked a required field or
	// carried a value that could not be coerced to its declared type.
	ErrMalformedResponse = errors.New("malformed identification response")
)

const (
	msgServiceUnavailable = "Failed to connect to the server. Please try again."
	msgMalformedResponse  = "The server sent an unexpected response. Please try again."
	msgUnknown            = "An error occurred. Please try again."
)

// UserMessage returns a message that is safe to show and speak to the user.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrServiceUnavailable):
		return msgServiceUnavailable
	case errors.Is(err, ErrMalformedResponse):
		return msgMalformedResponse
	default:
		return msgUnknown
	}
}
