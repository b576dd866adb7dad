package scanner

import (
	"context"
	"errors"
	"fmt"

	"github.com/JaimeStill/notewise/internal/camera"
	"github.com/JaimeStill/notewise/internal/capture"
	"github.com/JaimeStill/notewise/internal/identify"
)

type transition func(c *Controller, ev Event)

var transitions = map[Screen]map[Trigger]transition{
	Welcome: {
		StartScan: (*Controller).startScan,
	},
	CaptureOptions: {
		ChooseCamera: (*Controller).chooseCamera,
		ChooseUpload: (*Controller).chooseUpload,
		SelectFile:   (*Controller).selectFile,
		Back:         (*Controller).backToWelcome,
	},
	Camera: {
		Capture:      (*Controller).captureFrame,
		CancelCamera: (*Controller).cancelCamera,
	},
	Results: {
		ScanAgain: (*Controller).scanAgain,
		Back:      (*Controller).backToWelcome,
	},
}

var anyScreen = map[Trigger]transition{
	Hide: (*Controller).hide,
	Show: (*Controller).show,
}

func (c *Controller) startScan(Event) {
	c.enter(CaptureOptions)
	c.say(MsgCaptureOptions)
}

func (c *Controller) chooseCamera(Event) {
	if !c.caps.Camera || c.device == nil {
		c.cameraFailed(camera.ErrUnavailable)
		return
	}

	c.say(MsgOpeningCamera)

	c.epoch++
	c.opening = true
	epoch := c.epoch
	device, constraints := c.device, c.constraints

	c.async(func(ctx context.Context) {
		stream, err := device.Open(ctx, constraints)
		applied := c.complete(epoch, func() {
			if err != nil {
				c.opening = false
				c.cameraFailed(err)
				return
			}
			c.stream = stream
			c.enter(Camera)
		})
		if !applied && stream != nil {
			camera.Stop(stream)
		}
	})
}

func (c *Controller) cameraFailed(err error) {
	if !errors.Is(err, camera.ErrPermissionDenied) && !errors.Is(err, camera.ErrUnavailable) {
		err = fmt.Errorf("%w: %w", camera.ErrUnavailable, err)
	}
	c.warn(Warning{Message: WarnCameraDenied, Err: err})
	c.say(MsgCameraFailed)
}

func (c *Controller) chooseUpload(Event) {
	c.say(MsgSelectImage)
	c.presenter.OpenFilePicker()
}

func (c *Controller) selectFile(ev Event) {
	f := ev.File
	if f == nil || f.Open == nil {
		return
	}

	if !capture.IsImageType(f.ContentType) {
		c.warn(Warning{
			Message: WarnInvalidFile,
			Err:     fmt.Errorf("%w: %s (%q)", capture.ErrInvalidFileType, f.Name, f.ContentType),
		})
		c.say(MsgInvalidFile)
		return
	}

	c.enter(Processing)
	c.say(MsgImageSelected)

	epoch := c.epoch
	c.async(func(ctx context.Context) {
		img, err := readFile(f)
		c.complete(epoch, func() {
			if err != nil {
				c.showError(err)
				return
			}
			c.identify(img)
		})
	})
}

func readFile(f *File) (capture.Image, error) {
	rc, err := f.Open()
	if err != nil {
		return capture.Image{}, fmt.Errorf("%w: %w", capture.ErrReadFailure, err)
	}
	defer rc.Close()

	return capture.Read(rc, capture.SourceFile)
}

func (c *Controller) captureFrame(Event) {
	c.say(MsgCapturing)

	frame, err := c.stream.Frame()
	c.releaseCamera()
	c.enter(Processing)

	if err != nil {
		c.showError(fmt.Errorf("%w: %w", capture.ErrReadFailure, err))
		return
	}

	epoch := c.epoch
	c.async(func(ctx context.Context) {
		img, err := capture.Encode(frame, capture.SourceCamera)
		c.complete(epoch, func() {
			if err != nil {
				c.showError(fmt.Errorf("%w: %w", capture.ErrReadFailure, err))
				return
			}
			c.identify(img)
		})
	})
}

func (c *Controller) cancelCamera(Event) {
	c.releaseCamera()
	c.enter(CaptureOptions)
	c.say(MsgCameraCancelled)
}

func (c *Controller) backToWelcome(Event) {
	c.image = nil
	c.card = nil
	c.enter(Welcome)
	c.say(MsgGoingBack)
}

func (c *Controller) scanAgain(Event) {
	c.image = nil
	c.card = nil
	c.enter(CaptureOptions)
	c.say(MsgNewScan)
}

func (c *Controller) hide(Event) {
	switch {
	case c.screens.IsActive(Camera):
		c.releaseCamera()
		c.enter(CaptureOptions)
	case c.opening:
		c.epoch++
		c.opening = false
	}
	c.speaker.Pause()
}

func (c *Controller) show(Event) {
	c.speaker.Resume()
}

// identify submits img and applies the result if the screen has not moved on.
func (c *Controller) identify(img capture.Image) {
	c.image = &img
	c.say(MsgAnalyzing)

	epoch := c.epoch
	identifier := c.identifier

	c.async(func(ctx context.Context) {
		res, err := identifier.IdentifyNote(ctx, img.Data)
		c.complete(epoch, func() {
			if err != nil {
				c.showError(err)
				return
			}
			c.showResult(res)
		})
	})
}

func (c *Controller) showResult(res *identify.Result) {
	card := Interpret(res)
	c.present(card)

	if card.Kind != CardSuccess {
		c.say(card.Spoken())
		return
	}

	c.after(c.successDelay, func() {
		c.say(card.Spoken())
	})
}

func (c *Controller) showError(err error) {
	c.logger.Error("scan failed", "error", err)

	msg := identify.UserMessage(err)
	if errors.Is(err, capture.ErrReadFailure) || errors.Is(err, capture.ErrInvalidDataURI) {
		msg = capture.UserMessage(err)
	}

	c.present(Card{
		Kind:    CardError,
		Title:   "Error",
		Message: msg,
		Err:     err,
	})
	c.say(MsgError)
}

func (c *Controller) present(card Card) {
	if c.image != nil {
		card.Preview = c.image.Data
	}
	c.card = &card
	c.enter(Results)
	c.presenter.ShowResult(card)
}
