// Package commands defines the notewise CLI.
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/notewise/internal/config"
	"github.com/JaimeStill/notewise/internal/infrastructure"
)

var (
	configPath string
	verbose    bool

	cfg   *config.Config
	infra *infrastructure.Infrastructure
)

// Execute runs the root command until it completes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRoot().ExecuteContext(ctx)
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "notewise",
		Short:        "Accessible currency note scanner",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadFile(configPath)
			if err != nil {
				return err
			}
			if verbose {
				loaded.LogLevel = "debug"
			}
			cfg = loaded
			infra = infrastructure.NewWithWriter(cfg, cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", config.BaseConfigFile, "path to config.toml")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(scanCmd(), identifyCmd(), voicesCmd(), openapiCmd())
	return root
}
