package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func voicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "voices",
		Short: "List the voices offered by the configured speech engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			synth, err := newSynthesizer(io.Discard)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if synth == nil {
				fmt.Fprintln(out, "speech is disabled")
				return nil
			}

			voices, err := synth.Voices(cmd.Context())
			if err != nil {
				return fmt.Errorf("list voices: %w", err)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tLANGUAGE\tDEFAULT")
			for _, v := range voices {
				def := ""
				if v.Default {
					def = "yes"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Name, v.Language, def)
			}
			return tw.Flush()
		},
	}
}
