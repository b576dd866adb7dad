package camera

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	// decoders for still sources
	_ "image/jpeg"
	_ "image/png"
)

var stillExtensions = []string{".jpg", ".jpeg", ".png"}

// Still is a device backed by image files on disk. Frames cycle through the
// files in name order, and the position carries over from one Open to the
// next. It stands in for camera hardware in terminal sessions and demos.
type Still struct {
	source string

	mu   sync.Mutex
	next int
}

// NewStill creates a device reading from a single image file or a directory of images.
func NewStill(source string) *Still {
	return &Still{source: source}
}

func (s *Still) Open(ctx context.Context, c Constraints) (Stream, error) {
	if s.source == "" {
		return nil, ErrUnavailable
	}

	paths, err := s.frames()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &stillStream{
		device: s,
		paths:  paths,
		track:  &videoTrack{},
	}, nil
}

func (s *Still) frames() ([]string, error) {
	info, err := os.Stat(s.source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if !info.IsDir() {
		return []string{s.source}, nil
	}

	entries, err := os.ReadDir(s.source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var paths []string
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !e.IsDir() && slices.Contains(stillExtensions, ext) {
			paths = append(paths, filepath.Join(s.source, e.Name()))
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no images in %s", ErrUnavailable, s.source)
	}

	return paths, nil
}

func (s *Still) advance(paths []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	path := paths[s.next%len(paths)]
	s.next++
	return path
}

type stillStream struct {
	device *Still
	paths  []string
	track  *videoTrack
}

func (s *stillStream) Frame() (image.Image, error) {
	if !s.track.Live() {
		return nil, ErrStopped
	}

	path := s.device.advance(s.paths)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frame: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode frame %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

func (s *stillStream) Tracks() []Track {
	return []Track{s.track}
}

type videoTrack struct {
	stopped atomic.Bool
}

func (t *videoTrack) Kind() string { return "video" }
func (t *videoTrack) Live() bool   { return !t.stopped.Load() }
func (t *videoTrack) Stop()        { t.stopped.Store(true) }
