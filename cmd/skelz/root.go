package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/skelz-org/skelz/config"
)

// rootOptions carries flags shared by all subcommands.
type rootOptions struct {
	configPath string
	verbosity  int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "skelz",
		Short:         "Sign and verify OCI images against the Solana ledger",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			initLogging(opts.verbosity)
			if opts.configPath == "" {
				opts.configPath = config.DefaultPath()
			}
		},
	}

	cmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "increase verbosity (-v, -vv)")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to the configuration file")

	cmd.AddCommand(
		newConfigCmd(opts),
		newSignCmd(opts),
		newVerifyCmd(opts),
		newRegistryCmd(opts),
	)

	return cmd
}

// initLogging installs a text slog handler at a level derived from -v.
func initLogging(verbosity int) {
	level := slog.LevelWarn
	switch verbosity {
	case 0:
		// default
	case 1:
		level = slog.LevelInfo
	default:
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
