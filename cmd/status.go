package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grovetools/file-preview/config"
	"github.com/grovetools/file-preview/internal/daemon/store"
	"github.com/grovetools/file-preview/logging"
	"github.com/grovetools/file-preview/pkg/paths"
	"github.com/grovetools/file-preview/pkg/query"
	"github.com/spf13/cobra"
)

func newReader(cfg *config.Config) *query.Reader {
	return &query.Reader{
		Store:   store.New(paths.StateFilePath()),
		Dismiss: cfg.Dismiss,
		Logger:  logging.NewLogger("query"),
	}
}

func newStatusCmd(a *app) *cobra.Command {
	var follow bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the status bar JSON for the latest file",
		Long: `Prints one Waybar-compatible JSON object describing the latest new file, or an
"empty" object when there is none. With --follow, keeps running and prints a
new line whenever the output changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := newReader(a.cfg)
			if !follow {
				fmt.Fprintln(cmd.OutOrStdout(), r.Status().Line())
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return r.Follow(ctx, cmd.OutOrStdout(), interval)
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep running and print a line whenever the status changes")
	cmd.Flags().DurationVar(&interval, "interval", query.DefaultFollowTick, "Re-check interval used with --follow")
	return cmd
}
