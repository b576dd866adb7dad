package commands

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JaimeStill/notewise/internal/identify"
	"github.com/JaimeStill/notewise/internal/notes"
	"github.com/JaimeStill/notewise/internal/scanner"
	"github.com/JaimeStill/notewise/internal/speech"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatal(err)
	}
}

func TestParseLine(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "note.png")
	writePNG(t, img)

	tests := []struct {
		name    string
		line    string
		picking bool
		trigger scanner.Trigger
		quit    bool
		none    bool
		wantErr error
	}{
		{"blank", "   ", false, 0, false, true, nil},
		{"command", "start", false, scanner.StartScan, false, false, nil},
		{"padded command", "  capture ", false, scanner.Capture, false, false, nil},
		{"quit", "quit", false, 0, true, false, nil},
		{"file command", "file " + img, false, scanner.SelectFile, false, false, nil},
		{"picker path", img, true, scanner.SelectFile, false, false, nil},
		{"command while picking", "back", true, scanner.Back, false, false, nil},
		{"unknown", "dance", false, 0, false, false, errUnknownCommand},
		{"missing file", "file " + filepath.Join(dir, "gone.png"), false, 0, false, false, os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := parseLine(tt.line, tt.picking)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error: got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if in.quit != tt.quit {
				t.Errorf("quit: got %v, want %v", in.quit, tt.quit)
			}
			if tt.quit || tt.none {
				if in.event != nil {
					t.Errorf("unexpected event %v", in.event.Trigger)
				}
				return
			}
			if in.event == nil || in.event.Trigger != tt.trigger {
				t.Fatalf("event: got %+v, want %v", in.event, tt.trigger)
			}
			if tt.trigger == scanner.SelectFile && in.event.File.ContentType != "image/png" {
				t.Errorf("content type: got %s, want image/png", in.event.File.ContentType)
			}
		})
	}
}

func TestContentTypeSniffed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo")
	writePNG(t, path)

	if got := contentType(path); got != "image/png" {
		t.Errorf("content type: got %s, want image/png", got)
	}
}

func TestWriteCard(t *testing.T) {
	denom, code := "20", "USD"

	tests := []struct {
		name    string
		card    scanner.Card
		want    []string
		notWant []string
	}{
		{
			name: "success",
			card: scanner.Interpret(&identify.Result{
				Denomination:    &denom,
				CurrencyCode:    &code,
				Confidence:      0.92,
				OrientationNote: "correct",
				Message:         "This is a 20 US Dollar note",
			}),
			want: []string{"== 20 USD ==", "This is a 20 US Dollar note", "confidence: 92%", "orientation: correct"},
		},
		{
			name:    "blurry hides details",
			card:    scanner.Interpret(&identify.Result{Denomination: &denom, IsBlurry: true}),
			want:    []string{"Image unclear"},
			notWant: []string{"confidence", "20"},
		},
		{
			name: "error",
			card: scanner.Card{Kind: scanner.CardError, Title: "Error", Message: "Failed to read the image. Please try again."},
			want: []string{"== Error ==", "Failed to read the image"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			writeCard(&buf, tt.card)
			out := buf.String()

			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(out, s) {
					t.Errorf("output should not contain %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestReadLines(t *testing.T) {
	t.Run("sends every line then closes", func(t *testing.T) {
		lines := make(chan string)
		go readLines(context.Background(), strings.NewReader("start\nupload\n"), lines)

		var got []string
		for l := range lines {
			got = append(got, l)
		}
		if len(got) != 2 || got[0] != "start" || got[1] != "upload" {
			t.Errorf("lines: got %v", got)
		}
	})

	t.Run("returns when nobody reads after cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		lines := make(chan string)
		done := make(chan struct{})
		go func() {
			readLines(ctx, strings.NewReader("start\nupload\n"), lines)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("reader blocked after cancel")
		}
		if _, ok := <-lines; ok {
			t.Error("lines should be closed")
		}
	})
}

func TestSessionUploadFlow(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	img := filepath.Join(t.TempDir(), "note.png")
	writePNG(t, img)

	speechCfg := &speech.Config{Engine: speech.EngineNone}
	if err := speechCfg.Finalize(nil); err != nil {
		t.Fatal(err)
	}
	scanCfg := &scanner.Config{SuccessDelay: "1ms", GreetingDelay: "1ms"}
	if err := scanCfg.Finalize(nil); err != nil {
		t.Fatal(err)
	}

	out := &syncBuffer{}
	term := newTerminal(out)
	announcer := speech.New(nil, term, speechCfg, logger)

	ctrl := scanner.New(scanner.Deps{
		Identifier: identify.NewMock(0, notes.NewScenarios(notes.DefaultWeights, rand.New(rand.NewPCG(1, 2))), logger),
		Speaker:    announcer,
		Presenter:  term,
	}, scanCfg, logger)
	defer ctrl.Close()
	ctrl.Start()

	lines := make(chan string)
	done := make(chan error, 1)
	go func() {
		done <- session(context.Background(), ctrl, term, lines)
	}()

	lines <- "start"
	lines <- "upload"
	lines <- img

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), "[Results screen]") {
		if time.Now().After(deadline) {
			t.Fatalf("results never shown:\n%s", out.String())
		}
		time.Sleep(5 * time.Millisecond)
	}

	if term.picker.Load() {
		t.Error("file picker should close after a selection")
	}

	lines <- "quit"
	if err := <-done; err != nil {
		t.Errorf("session: %v", err)
	}

	for _, s := range []string{"[Capture options screen]", "* " + scanner.MsgImageSelected, "Enter the path of an image file"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("output missing %q", s)
		}
	}
}
