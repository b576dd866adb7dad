package capture_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/JaimeStill/notewise/internal/capture"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestIsImageType(t *testing.T) {
	tests := []struct {
		contentType string
		expected    bool
	}{
		{"image/png", true},
		{"image/jpeg", true},
		{"IMAGE/WEBP", true},
		{"image/png; charset=binary", true},
		{"application/pdf", false},
		{"text/plain", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			if got := capture.IsImageType(tt.contentType); got != tt.expected {
				t.Errorf("IsImageType(%q) = %v, want %v", tt.contentType, got, tt.expected)
			}
		})
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		wantW int
		wantH int
	}{
		{"within bounds", 800, 600, 800, 600},
		{"wide", 3840, 1080, 1920, 540},
		{"tall", 1000, 2160, 500, 1080},
		{"uhd", 3840, 2160, 1920, 1080},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
			got := capture.Fit(img, capture.MaxWidth, capture.MaxHeight).Bounds()
			if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", got.Dx(), got.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRead(t *testing.T) {
	img, err := capture.Read(bytes.NewReader(testPNG(t, 64, 32)), capture.SourceFile)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if img.Source != capture.SourceFile {
		t.Errorf("source: got %q, want %q", img.Source, capture.SourceFile)
	}

	uri, err := capture.ParseDataURI(img.Data)
	if err != nil {
		t.Fatalf("ParseDataURI failed: %v", err)
	}
	if !uri.IsImage() {
		t.Errorf("media type %q is not an image", uri.MediaType)
	}

	decoded, err := capture.Decode(bytes.NewReader(uri.Data))
	if err != nil {
		t.Fatalf("decode round trip: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("bounds: got %v", b)
	}
}

func TestReadFailure(t *testing.T) {
	_, err := capture.Read(strings.NewReader("not an image"), capture.SourceFile)
	if !errors.Is(err, capture.ErrReadFailure) {
		t.Errorf("got %v, want ErrReadFailure", err)
	}
}

func TestParseDataURI(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		mediaType string
		wantErr   bool
	}{
		{"valid", "data:image/png;base64,aGVsbG8=", "image/png", false},
		{"text", "data:text/plain;base64,aGVsbG8=", "text/plain", false},
		{"no prefix", "image/png;base64,aGVsbG8=", "", true},
		{"no payload", "data:image/png;base64", "", true},
		{"not base64", "data:image/png,hello", "", true},
		{"bad base64", "data:image/png;base64,@@@", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri, err := capture.ParseDataURI(tt.input)
			if tt.wantErr {
				if !errors.Is(err, capture.ErrInvalidDataURI) {
					t.Errorf("got %v, want ErrInvalidDataURI", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if uri.MediaType != tt.mediaType {
				t.Errorf("media type: got %q, want %q", uri.MediaType, tt.mediaType)
			}
			if string(uri.Data) != "hello" {
				t.Errorf("data: got %q", uri.Data)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := capture.UserMessage(capture.ErrInvalidFileType); got != "Please select a valid image file" {
		t.Errorf("got %q", got)
	}
	if got := capture.UserMessage(capture.ErrReadFailure); got != "Failed to read the image. Please try again." {
		t.Errorf("got %q", got)
	}
}
