// Package capture turns camera frames and selected files into encoded images
// suitable for a text-based identification request.
package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime"
	"strings"

	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"
	"golang.org/x/image/draw"

	// upload decoders
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Source identifies where a captured image came from.
type Source string

const (
	SourceCamera Source = "camera"
	SourceFile   Source = "file"
)

// Preferred bounds for encoded images. Larger inputs are scaled down to fit.
const (
	MaxWidth  = 1920
	MaxHeight = 1080
)

// Image is an encoded capture. It is never modified after creation.
type Image struct {
	Data   string
	Source Source
}

// IsImageType reports whether contentType declares an image media type.
func IsImageType(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mt, "image/")
}

// Decode reads and decodes an image in any registered format.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}
	return img, nil
}

// Fit scales img down to fit within maxW x maxH, preserving aspect ratio.
// Images already within bounds are returned unchanged.
func Fit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return img
	}

	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := max(1, int(float64(w)*scale))
	nh := max(1, int(float64(h)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// Encode fits img to the preferred bounds and encodes it as a PNG data URI.
func Encode(img image.Image, src Source) (Image, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Fit(img, MaxWidth, MaxHeight)); err != nil {
		return Image{}, fmt.Errorf("encode png: %w", err)
	}

	uri, err := encoding.EncodeImageDataURI(buf.Bytes(), document.PNG)
	if err != nil {
		return Image{}, fmt.Errorf("encode data uri: %w", err)
	}

	return Image{Data: uri, Source: src}, nil
}

// Read decodes the image in r and encodes it for submission.
func Read(r io.Reader, src Source) (Image, error) {
	img, err := Decode(r)
	if err != nil {
		return Image{}, err
	}
	return Encode(img, src)
}
