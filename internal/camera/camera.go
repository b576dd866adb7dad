// Package camera abstracts media capture: a device grants a stream of video
// tracks, and the holder must stop every track when done with it.
package camera

import (
	"context"
	"errors"
	"image"
)

// Facing modes.
const (
	FacingEnvironment = "environment"
	FacingUser        = "user"
)

var (
	// ErrPermissionDenied indicates the user or platform refused camera access.
	ErrPermissionDenied = errors.New("camera permission denied")
	// ErrUnavailable indicates no camera device exists.
	ErrUnavailable = errors.New("camera unavailable")
	// ErrStopped indicates a frame was requested from a stopped stream.
	ErrStopped = errors.New("camera stream stopped")
)

// Constraints describe the requested stream. Width and Height are ideals, not minimums.
type Constraints struct {
	FacingMode string
	Width      int
	Height     int
}

// Device grants camera streams.
type Device interface {
	// Open requests access and returns a live stream. It may block while the
	// user decides, and returns ErrPermissionDenied on refusal.
	Open(ctx context.Context, c Constraints) (Stream, error)
}

// Track is a single media track within a stream.
type Track interface {
	Kind() string
	Live() bool
	Stop()
}

// Stream is a live camera stream.
type Stream interface {
	// Frame freezes and returns the current frame.
	Frame() (image.Image, error)
	Tracks() []Track
}

// Stop stops every track of s. Safe on a nil stream.
func Stop(s Stream) {
	if s == nil {
		return
	}
	for _, t := range s.Tracks() {
		t.Stop()
	}
}

// Active reports whether any track of s is still live.
func Active(s Stream) bool {
	if s == nil {
		return false
	}
	for _, t := range s.Tracks() {
		if t.Live() {
			return true
		}
	}
	return false
}
