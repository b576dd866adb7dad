package camera_test

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/notewise/internal/camera"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestStillOpen(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 10, 10)
	writePNG(t, filepath.Join(dir, "b.png"), 20, 10)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644); err != nil {
		t.Fatal(err)
	}

	stream, err := camera.NewStill(dir).Open(context.Background(), camera.Constraints{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if !camera.Active(stream) {
		t.Fatal("new stream should be active")
	}

	widths := []int{10, 20, 10}
	for i, want := range widths {
		frame, err := stream.Frame()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if got := frame.Bounds().Dx(); got != want {
			t.Errorf("frame %d width: got %d, want %d", i, got, want)
		}
	}

	camera.Stop(stream)
	if camera.Active(stream) {
		t.Error("stream still active after Stop")
	}
	if _, err := stream.Frame(); !errors.Is(err, camera.ErrStopped) {
		t.Errorf("Frame after stop: got %v, want ErrStopped", err)
	}
}

func TestStillCyclesAcrossOpens(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 10, 10)
	writePNG(t, filepath.Join(dir, "b.png"), 20, 10)

	device := camera.NewStill(dir)

	for i, want := range []int{10, 20, 10} {
		stream, err := device.Open(context.Background(), camera.Constraints{})
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}

		frame, err := stream.Frame()
		camera.Stop(stream)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if got := frame.Bounds().Dx(); got != want {
			t.Errorf("capture %d width: got %d, want %d", i, got, want)
		}
	}
}

func TestStillUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty source", ""},
		{"missing path", filepath.Join(t.TempDir(), "missing.png")},
		{"empty dir", t.TempDir()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := camera.NewStill(tt.source).Open(context.Background(), camera.Constraints{})
			if !errors.Is(err, camera.ErrUnavailable) {
				t.Errorf("got %v, want ErrUnavailable", err)
			}
		})
	}
}

func TestStopNil(t *testing.T) {
	camera.Stop(nil)
	if camera.Active(nil) {
		t.Error("nil stream reported active")
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Setenv("TEST_CAMERA_WIDTH", "1280")

	cfg := &camera.Config{}
	if err := cfg.Finalize(&camera.Env{Width: "TEST_CAMERA_WIDTH"}); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	c := cfg.Constraints()
	if c.FacingMode != camera.FacingEnvironment {
		t.Errorf("facing mode: got %q", c.FacingMode)
	}
	if c.Width != 1280 || c.Height != 1080 {
		t.Errorf("resolution: got %dx%d", c.Width, c.Height)
	}

	bad := &camera.Config{FacingMode: "sideways"}
	if err := bad.Finalize(nil); err == nil {
		t.Error("expected error for invalid facing mode")
	}
}
