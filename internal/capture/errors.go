package capture

import "errors"

var (
	// ErrInvalidFileType indicates a selected file does not declare an image content type.
	ErrInvalidFileType = errors.New("invalid file type")
	// ErrReadFailure indicates image bytes could not be read or decoded.
	ErrReadFailure = errors.New("image read failure")
	// ErrInvalidDataURI indicates a malformed or non-base64 data URI.
	ErrInvalidDataURI = errors.New("invalid data uri")
)

// UserMessage returns the user-safe text for a capture error.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidFileType):
		return "Please select a valid image file"
	case errors.Is(err, ErrReadFailure), errors.Is(err, ErrInvalidDataURI):
		return "Failed to read the image. Please try again."
	default:
		return "An error occurred. Please try again."
	}
}
