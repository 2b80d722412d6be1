package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/yangwenmai/holidaymeme/internal/config"
	"github.com/yangwenmai/holidaymeme/internal/model"
)

func newTodayCmd(cfg *config.Config) *cobra.Command {
	var refresh, share bool
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Print today's holiday and meme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(*cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			var c *model.DailyContent
			if refresh {
				c, err = a.session.Refresh(ctx)
			} else {
				c, err = a.session.Load(ctx)
			}
			if err != nil {
				if c == nil {
					return err
				}
				slog.Warn("showing previous card", "error", err)
			}

			if share {
				fmt.Fprintln(cmd.OutOrStdout(), model.ShareableText(*c))
				return nil
			}
			printCard(cmd.OutOrStdout(), *c)
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore today's cached card and pick again")
	cmd.Flags().BoolVar(&share, "share", false, "print the shareable text only")
	return cmd
}

func printCard(w io.Writer, c model.DailyContent) {
	fmt.Fprintf(w, "%s (%s)\n", c.Holiday.Name, c.Date)
	if c.Holiday.Description != "" {
		fmt.Fprintln(w, c.Holiday.Description)
	}
	if c.Holiday.Reason != "" {
		fmt.Fprintf(w, "Why this holiday? %s\n", c.Holiday.Reason)
	}
	fmt.Fprintf(w, "\n%s\n", c.Media)
}
