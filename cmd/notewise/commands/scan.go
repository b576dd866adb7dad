package commands

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/notewise/internal/camera"
	"github.com/JaimeStill/notewise/internal/identify"
	"github.com/JaimeStill/notewise/internal/scanner"
	"github.com/JaimeStill/notewise/internal/speech"
)

func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Run an interactive, spoken scan session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			logger := infra.Logger.With("session", uuid.NewString())
			term := newTerminal(cmd.OutOrStdout())

			synth, err := newSynthesizer(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			announcer := speech.New(synth, term, &cfg.Speech, logger)

			ctrl := scanner.New(scanner.Deps{
				Identifier:  identify.New(&cfg.Identify, logger),
				Device:      camera.NewStill(cfg.Camera.Source),
				Constraints: cfg.Camera.Constraints(),
				Speaker:     announcer,
				Presenter:   term,
				Caps: scanner.Capabilities{
					Camera: cfg.Camera.Source != "",
					Speech: announcer.Available(),
				},
			}, &cfg.Scanner, logger)

			lc := infra.Lifecycle
			lc.OnStartup(func() {
				if err := announcer.LoadVoices(ctx); err != nil {
					logger.Warn("voice discovery failed", "error", err)
				}
			})
			lc.OnShutdown(func() {
				<-lc.Context().Done()
				ctrl.Close()
			})

			ctrl.Start()

			g, gctx := errgroup.WithContext(ctx)

			lines := make(chan string)
			go readLines(gctx, cmd.InOrStdin(), lines)

			g.Go(func() error {
				defer cancel()
				return session(gctx, ctrl, term, lines)
			})
			g.Go(func() error {
				<-gctx.Done()
				return lc.Shutdown(cfg.ShutdownTimeoutDuration())
			})

			return g.Wait()
		},
	}
}

// session feeds user input to the controller until quit, end of input, or
// cancellation.
func session(ctx context.Context, ctrl *scanner.Controller, term *terminal, lines <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}

			in, err := parseLine(line, term.picker.Load())
			if err != nil {
				term.ShowWarning(scanner.Warning{Message: err.Error(), Err: err})
				continue
			}
			if in.quit {
				return nil
			}
			if in.event == nil {
				continue
			}

			if in.event.Trigger == scanner.SelectFile {
				term.picker.Store(false)
			}
			ctrl.Handle(*in.event)
		}
	}
}

func newSynthesizer(w io.Writer) (speech.Synthesizer, error) {
	return speech.NewSynthesizer(&cfg.Speech, w, infra.Logger)
}
