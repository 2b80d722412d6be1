package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/yangwenmai/holidaymeme/internal/config"
)

// newRootCmd builds the command tree. Configuration is loaded once before any
// subcommand runs.
func newRootCmd() *cobra.Command {
	var cfg config.Config

	root := &cobra.Command{
		Use:          "holidaymeme",
		Short:        "Daily holiday discoveries for your engineering team",
		Version:      version + " (" + commit + ")",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cfg = config.Load()
			slog.SetDefault(cfg.NewLogger(cmd.ErrOrStderr()))
		},
	}
	root.AddCommand(newServeCmd(&cfg))
	root.AddCommand(newTodayCmd(&cfg))
	return root
}
