package cmd

import (
	"github.com/grovetools/file-preview/internal/daemon/engine"
	"github.com/grovetools/file-preview/internal/daemon/filter"
	"github.com/grovetools/file-preview/internal/daemon/notification"
	"github.com/grovetools/file-preview/internal/daemon/notifier"
	"github.com/grovetools/file-preview/internal/daemon/source"
	"github.com/grovetools/file-preview/internal/daemon/store"
	"github.com/grovetools/file-preview/logging"
	"github.com/grovetools/file-preview/pkg/paths"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the watch daemon in the foreground",
		Long: `Watches the configured directories and publishes every new, completed file
as the latest notification. Stops cleanly on SIGINT or SIGTERM, clearing the
notification and removing its PID file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			logger := logging.NewLogger("watch")

			src, err := source.New(cfg.Backend, logging.NewLogger("source"))
			if err != nil {
				return err
			}

			seen := filter.NewSeenSet()
			state := notification.New(
				store.New(paths.StateFilePath()),
				notifier.NewStatusBar(cfg.StatusBarProcess, cfg.SignalNumber),
				nil,
				logger,
			)

			eng := engine.New(engine.Options{
				Source:        src,
				Filter:        filter.New(cfg.IgnoreSuffixes, seen, logging.NewLogger("filter")),
				Seen:          seen,
				State:         state,
				PidPath:       paths.PidFilePath(),
				WatchDirs:     cfg.WatchDirs,
				Dismiss:       cfg.Dismiss,
				HandleSignals: true,
			}, logger)

			return eng.Run(cmd.Context())
		},
	}
}
