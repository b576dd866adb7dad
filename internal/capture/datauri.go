package capture

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DataURI is a parsed base64 data URI.
type DataURI struct {
	MediaType string
	Data      []byte
}

// IsImage reports whether the URI declares an image media type.
func (d *DataURI) IsImage() bool {
	return IsImageType(d.MediaType)
}

// ParseDataURI parses a "data:<mediatype>;base64,<payload>" string.
func ParseDataURI(s string) (*DataURI, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, fmt.Errorf("%w: missing data: prefix", ErrInvalidDataURI)
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing payload", ErrInvalidDataURI)
	}

	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return nil, fmt.Errorf("%w: payload is not base64", ErrInvalidDataURI)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataURI, err)
	}

	return &DataURI{MediaType: mediaType, Data: data}, nil
}
