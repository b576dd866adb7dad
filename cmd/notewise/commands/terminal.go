package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/JaimeStill/notewise/internal/scanner"
	"github.com/JaimeStill/notewise/internal/speech"
)

var commandTriggers = map[string]scanner.Trigger{
	"start":   scanner.StartScan,
	"camera":  scanner.ChooseCamera,
	"upload":  scanner.ChooseUpload,
	"back":    scanner.Back,
	"capture": scanner.Capture,
	"cancel":  scanner.CancelCamera,
	"again":   scanner.ScanAgain,
	"hide":    scanner.Hide,
	"show":    scanner.Show,
}

var screenHelp = map[scanner.Screen]string{
	scanner.Welcome:        "start | quit",
	scanner.CaptureOptions: "camera | upload | file <path> | back",
	scanner.Camera:         "capture | cancel",
	scanner.Processing:     "please wait",
	scanner.Results:        "again | back",
}

var errUnknownCommand = errors.New("unknown command")

// terminal renders a scan session as text. It is both the controller's
// presenter and the announcer's live region.
type terminal struct {
	mu     sync.Mutex
	w      io.Writer
	picker atomic.Bool
}

var (
	_ scanner.Presenter = (*terminal)(nil)
	_ speech.LiveRegion = (*terminal)(nil)
)

func newTerminal(w io.Writer) *terminal {
	return &terminal{w: w}
}

func (t *terminal) Announce(text string) {
	t.printf("* %s\n", text)
}

func (t *terminal) ShowScreen(s scanner.Screen) {
	t.printf("\n[%s]\n  %s\n", s.Title(), screenHelp[s])
}

func (t *terminal) ShowResult(c scanner.Card) {
	t.mu.Lock()
	defer t.mu.Unlock()
	writeCard(t.w, c)
}

func (t *terminal) ShowWarning(w scanner.Warning) {
	t.printf("! %s\n", w.Message)
}

func (t *terminal) OpenFilePicker() {
	t.picker.Store(true)
	t.printf("Enter the path of an image file:\n")
}

func (t *terminal) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, format, args...)
}

type input struct {
	event *scanner.Event
	quit  bool
}

// parseLine maps one line of user input to a controller event. While the
// file picker is open, a line that is not a command is taken as a path.
func parseLine(line string, picking bool) (input, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return input{}, nil
	}

	switch line {
	case "quit", "exit":
		return input{quit: true}, nil
	}

	if t, ok := commandTriggers[line]; ok {
		return input{event: &scanner.Event{Trigger: t}}, nil
	}

	path, isFile := strings.CutPrefix(line, "file ")
	if !isFile && !picking {
		return input{}, fmt.Errorf("%w: %s", errUnknownCommand, line)
	}

	f, err := openFile(strings.TrimSpace(path))
	if err != nil {
		return input{}, err
	}
	return input{event: &scanner.Event{Trigger: scanner.SelectFile, File: &f}}, nil
}

// openFile describes the file at path for selection. The content type comes
// from the extension, falling back to sniffing the leading bytes.
func openFile(path string) (scanner.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return scanner.File{}, err
	}
	if info.IsDir() {
		return scanner.File{}, fmt.Errorf("%s is a directory", path)
	}

	return scanner.File{
		Name:        filepath.Base(path),
		ContentType: contentType(path),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

func contentType(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}

	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, _ := io.ReadFull(f, buf)
	return http.DetectContentType(buf[:n])
}

func writeCard(w io.Writer, c scanner.Card) {
	fmt.Fprintf(w, "\n== %s ==\n%s\n", c.Title, c.Message)

	if c.Kind == scanner.CardBlurry || c.Result == nil {
		return
	}
	fmt.Fprintf(w, "confidence: %.0f%%\n", c.Result.Confidence*100)
	if c.Result.OrientationNote != "" {
		fmt.Fprintf(w, "orientation: %s\n", c.Result.OrientationNote)
	}
}

// readLines sends each line of r to lines and closes it at EOF or when ctx
// is done.
func readLines(ctx context.Context, r io.Reader, lines chan<- string) {
	defer close(lines)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		select {
		case lines <- sc.Text():
		case <-ctx.Done():
			return
		}
	}
}
