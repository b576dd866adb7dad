package recognition_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JaimeStill/notewise/internal/notes"
	"github.com/JaimeStill/notewise/internal/recognition"
	"github.com/JaimeStill/notewise/pkg/lifecycle"
	"github.com/JaimeStill/notewise/pkg/routes"
)

type fakeRecognizer struct {
	recognize func(ctx context.Context, img image.Image) (notes.Response, error)
}

func (f *fakeRecognizer) Recognize(ctx context.Context, img image.Image) (notes.Response, error) {
	return f.recognize(ctx, img)
}

func fixed(resp notes.Response, err error) *fakeRecognizer {
	return &fakeRecognizer{
		recognize: func(context.Context, image.Image) (notes.Response, error) {
			return resp, err
		},
	}
}

func testConfig(t *testing.T, maxConcurrent int) *recognition.Config {
	t.Helper()
	cfg := &recognition.Config{MaxConcurrent: maxConcurrent}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	return cfg
}

func newHandler(t *testing.T, sys recognition.System) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler(1<<20).Routes())
	return mux
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pngDataURI(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/identify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	return rec
}

func imageBody(t *testing.T, image string) string {
	t.Helper()
	data, err := json.Marshal(notes.Request{Image: image})
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestIdentifySuccess(t *testing.T) {
	want := notes.Success(notes.Catalog[4], 0.91)
	sys := recognition.NewWithRecognizer(testConfig(t, 4), fixed(want, nil), discard())

	rec := post(t, newHandler(t, sys), imageBody(t, pngDataURI(t)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body)
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, field := range []string{"denomination", "currency_code", "confidence", "message"} {
		if _, ok := got[field]; !ok {
			t.Errorf("response missing %s", field)
		}
	}
	if got["message"] != want.Message {
		t.Errorf("message: got %v, want %s", got["message"], want.Message)
	}
}

func TestIdentifyBadRequest(t *testing.T) {
	sys := recognition.NewWithRecognizer(testConfig(t, 4), fixed(notes.Blurry(), nil), discard())
	h := newHandler(t, sys)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"image":`},
		{"missing image", `{}`},
		{"not a data uri", imageBody(t, "hello")},
		{"non-image media type", imageBody(t, "data:text/plain;base64,aGVsbG8=")},
		{"bad base64", imageBody(t, "data:image/png;base64,@@@@")},
		{"undecodable image", imageBody(t, "data:image/png;base64,aGVsbG8=")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rec.Code)
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if body["error"] == "" {
				t.Error("error message missing")
			}
		})
	}
}

func TestIdentifyTooLarge(t *testing.T) {
	sys := recognition.NewWithRecognizer(testConfig(t, 4), fixed(notes.Blurry(), nil), discard())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /identify", sys.Handler(64).Identify)

	rec := post(t, mux, imageBody(t, pngDataURI(t)))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status: got %d, want 413", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "limit is 64 B") {
		t.Errorf("body should name the limit: %s", rec.Body.String())
	}
}

func TestIdentifyRecognizerFailure(t *testing.T) {
	sys := recognition.NewWithRecognizer(testConfig(t, 4), fixed(notes.Response{}, errors.New("model offline")), discard())

	rec := post(t, newHandler(t, sys), imageBody(t, pngDataURI(t)))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
}

func TestIdentifySaturated(t *testing.T) {
	entered := make(chan struct{}, 2)
	release := make(chan struct{})
	blocking := &fakeRecognizer{
		recognize: func(ctx context.Context, _ image.Image) (notes.Response, error) {
			entered <- struct{}{}
			<-release
			return notes.LowConfidence(), nil
		},
	}
	sys := recognition.NewWithRecognizer(testConfig(t, 1), blocking, discard())
	h := newHandler(t, sys)
	body := imageBody(t, pngDataURI(t))

	var wg sync.WaitGroup
	var first *httptest.ResponseRecorder
	wg.Go(func() {
		first = post(t, h, body)
	})

	<-entered
	if rec := post(t, h, body); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("saturated status: got %d, want 503", rec.Code)
	}

	close(release)
	wg.Wait()

	if first.Code != http.StatusOK {
		t.Errorf("first status: got %d, want 200", first.Code)
	}
	if rec := post(t, h, body); rec.Code != http.StatusOK {
		t.Errorf("status after release: got %d, want 200", rec.Code)
	}
}

func TestMockRecognizerWeights(t *testing.T) {
	// zero weights take defaults, so 1 + 0.1 exceeds the total
	cfg := &recognition.Config{MaxConcurrent: 1, BlurryWeight: 1}
	if err := cfg.Finalize(nil); err == nil {
		t.Fatal("expected weight validation error")
	}

	cfg = &recognition.Config{MaxConcurrent: 1, BlurryWeight: 0.9, LowConfidenceWeight: 0.1}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	sys := recognition.New(cfg, discard())
	for range 20 {
		resp, err := sys.Identify(context.Background(), pngDataURI(t))
		if err != nil {
			t.Fatalf("Identify: %v", err)
		}
		if !resp.IsBlurry && resp.Confidence != 0.45 {
			t.Errorf("unexpected success scenario: %+v", resp)
		}
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{recognition.ErrInvalidRequest, http.StatusBadRequest},
		{recognition.ErrMissingImage, http.StatusBadRequest},
		{recognition.ErrInvalidImage, http.StatusBadRequest},
		{recognition.ErrTooLarge, http.StatusRequestEntityTooLarge},
		{recognition.ErrBusy, http.StatusServiceUnavailable},
		{recognition.ErrRecognition, http.StatusInternalServerError},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := recognition.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStartDrainsOnShutdown(t *testing.T) {
	sys := recognition.New(testConfig(t, 2), discard())
	lc := lifecycle.New()

	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start: %v", err)
	}
	lc.WaitForStartup()

	if !sys.Ready() || !lc.Ready() {
		t.Fatal("should be ready after startup")
	}

	if err := lc.Shutdown(time.Second); err != nil {
		t.Errorf("Shutdown: %v", err)
	}

	if sys.Ready() {
		t.Error("should not be ready after shutdown")
	}
	if _, err := sys.Identify(context.Background(), pngDataURI(t)); !errors.Is(err, recognition.ErrBusy) {
		t.Errorf("identify after shutdown: got %v, want ErrBusy", err)
	}
}
