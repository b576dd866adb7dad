package openapi

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// MarshalJSON validates the document and serializes it to indented JSON.
func MarshalJSON(spec *Spec) ([]byte, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return json.MarshalIndent(spec, "", "  ")
}

// WriteJSON writes the validated spec to filename, creating parent
// directories as needed.
func WriteJSON(spec *Spec, filename string) error {
	data, err := MarshalJSON(spec)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return os.WriteFile(filename, append(data, '\n'), 0o644)
}
