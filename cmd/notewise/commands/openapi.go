package commands

import (
	"github.com/spf13/cobra"

	"github.com/JaimeStill/notewise/internal/api"
	"github.com/JaimeStill/notewise/pkg/openapi"
)

func openapiCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Write the identification service OpenAPI document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openapi.WriteJSON(api.NewSpec(cfg), out); err != nil {
				return err
			}
			infra.Logger.Info("openapi document written", "file", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "openapi.json", "output file")
	return cmd
}
