// Package scanner implements the scan flow controller: the screen state
// machine that coordinates camera capture, file selection, identification,
// and spoken result announcements.
package scanner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/JaimeStill/notewise/internal/camera"
	"github.com/JaimeStill/notewise/internal/capture"
	"github.com/JaimeStill/notewise/internal/identify"
)

// Presenter renders controller output. Methods are called while the
// controller holds its lock and must not dispatch back into it synchronously.
type Presenter interface {
	ShowScreen(s Screen)
	ShowResult(c Card)
	ShowWarning(w Warning)
	OpenFilePicker()
}

// Speaker narrates the session. *speech.Announcer satisfies it.
type Speaker interface {
	Announce(text string)
	AnnounceAndSpeak(text string)
	Cancel()
	Pause()
	Resume()
}

// Warning is an inline, non-fatal notice that does not change the screen.
type Warning struct {
	Message string
	Err     error
}

// Capabilities reports which platform features are available.
type Capabilities struct {
	Camera bool
	Speech bool
}

// Deps are the collaborators injected into a Controller.
type Deps struct {
	Identifier  identify.Identifier
	Device      camera.Device
	Constraints camera.Constraints
	Speaker     Speaker
	Presenter   Presenter
	Caps        Capabilities
}

// State is a snapshot of the controller.
type State struct {
	Screen       Screen
	Image        *capture.Image
	Card         *Card
	CameraActive bool
}

// Controller owns the screen state, the captured image, and the camera stream.
// Every trigger and async completion runs under a single lock.
type Controller struct {
	mu      sync.Mutex
	screens Screens
	epoch   uint64
	opening bool
	closed  bool

	image  *capture.Image
	card   *Card
	stream camera.Stream

	identifier  identify.Identifier
	device      camera.Device
	constraints camera.Constraints
	speaker     Speaker
	presenter   Presenter
	caps        Capabilities

	successDelay  time.Duration
	greetingDelay time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *slog.Logger
}

// New creates a controller on the Welcome screen. Call Start to present it.
func New(deps Deps, cfg *Config, logger *slog.Logger) *Controller {
	constraints := deps.Constraints
	if constraints.FacingMode == "" {
		constraints = camera.Constraints{
			FacingMode: camera.FacingEnvironment,
			Width:      capture.MaxWidth,
			Height:     capture.MaxHeight,
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Controller{
		identifier:    deps.Identifier,
		device:        deps.Device,
		constraints:   constraints,
		speaker:       deps.Speaker,
		presenter:     deps.Presenter,
		caps:          deps.Caps,
		successDelay:  cfg.SuccessDelayDuration(),
		greetingDelay: cfg.GreetingDelayDuration(),
		ctx:           ctx,
		cancel:        cancel,
		logger:        logger.With("system", "scanner"),
	}
	c.screens.Activate(Welcome)
	return c
}

// Start presents the Welcome screen and speaks the greeting after the
// configured delay.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.enter(Welcome)
	c.after(c.greetingDelay, func() {
		c.say(MsgGreeting)
	})
}

// Dispatch delivers a trigger with no payload.
func (c *Controller) Dispatch(t Trigger) {
	c.Handle(Event{Trigger: t})
}

// SelectFile delivers a file chosen in the file picker.
func (c *Controller) SelectFile(f File) {
	c.Handle(Event{Trigger: SelectFile, File: &f})
}

// Handle runs the transition registered for the event on the active screen.
// Unregistered triggers are ignored.
func (c *Controller) Handle(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	screen := c.screens.Active()
	t, ok := transitions[screen][ev.Trigger]
	if !ok {
		t, ok = anyScreen[ev.Trigger]
	}
	if !ok {
		c.logger.Debug("trigger ignored", "screen", screen, "trigger", ev.Trigger)
		return
	}

	c.logger.Debug("trigger", "screen", screen, "trigger", ev.Trigger)
	t(c, ev)
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{
		Screen:       c.screens.Active(),
		Image:        c.image,
		Card:         c.card,
		CameraActive: camera.Active(c.stream),
	}
}

// Screens returns a copy of the screen flags.
func (c *Controller) Screens() Screens {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screens
}

// Close releases the camera, cancels speech and in-flight work, and waits for
// background goroutines to finish. Later triggers are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.epoch++
	c.releaseCamera()
	c.speaker.Cancel()
	c.cancel()
	c.mu.Unlock()

	c.wg.Wait()
	c.logger.Info("scan session closed")
}

// enter activates screen, invalidates pending async work, and mirrors the
// screen title to the live region.
func (c *Controller) enter(screen Screen) {
	c.epoch++
	c.opening = false
	c.screens.Activate(screen)
	c.presenter.ShowScreen(screen)
	c.speaker.Announce(screen.Title())
}

func (c *Controller) say(text string) {
	if c.caps.Speech {
		c.speaker.AnnounceAndSpeak(text)
		return
	}
	c.speaker.Announce(text)
}

func (c *Controller) warn(w Warning) {
	c.logger.Warn("warning", "message", w.Message, "error", w.Err)
	c.presenter.ShowWarning(w)
}

func (c *Controller) releaseCamera() {
	if c.stream == nil {
		return
	}
	camera.Stop(c.stream)
	c.stream = nil
	c.logger.Debug("camera released")
}

// async runs fn on a goroutine tracked by Close.
func (c *Controller) async(fn func(ctx context.Context)) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn(c.ctx)
	}()
}

// after runs fn under the lock once d elapses, unless the epoch moved on.
func (c *Controller) after(d time.Duration, fn func()) {
	epoch := c.epoch
	time.AfterFunc(d, func() {
		c.complete(epoch, fn)
	})
}

// complete applies fn if epoch is still current and reports whether it ran.
// Stale completions are discarded silently.
func (c *Controller) complete(epoch uint64, fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || epoch != c.epoch {
		c.logger.Debug("discarding stale completion", "epoch", epoch, "current", c.epoch)
		return false
	}

	fn()
	return true
}
