package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/notewise/internal/capture"
	"github.com/JaimeStill/notewise/internal/identify"
	"github.com/JaimeStill/notewise/internal/scanner"
)

func identifyCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "identify <image>",
		Short: "Identify the note in an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openFile(args[0])
			if err != nil {
				return err
			}
			if !capture.IsImageType(f.ContentType) {
				return fmt.Errorf("%s: %w", f.Name, capture.ErrInvalidFileType)
			}

			rc, err := f.Open()
			if err != nil {
				return fmt.Errorf("%w: %w", capture.ErrReadFailure, err)
			}
			img, err := capture.Read(rc, capture.SourceFile)
			rc.Close()
			if err != nil {
				return err
			}

			identifier := identify.New(&cfg.Identify, infra.Logger)
			result, err := identifier.IdentifyNote(cmd.Context(), img.Data)
			if err != nil {
				return fmt.Errorf("%s: %w", identify.UserMessage(err), err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			writeCard(out, scanner.Interpret(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw identification result as JSON")
	return cmd
}
