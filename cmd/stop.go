package cmd

import (
	"fmt"

	"github.com/grovetools/file-preview/internal/daemon/pidfile"
	"github.com/grovetools/file-preview/logging"
	"github.com/grovetools/file-preview/pkg/paths"
	"github.com/grovetools/file-preview/pkg/process"
	"github.com/spf13/cobra"
)

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running watch daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pidPath := paths.PidFilePath()
			pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())

			running, pid, err := pidfile.IsRunning(pidPath)
			if err != nil {
				return fmt.Errorf("error checking daemon status: %w", err)
			}

			if !running {
				pretty.Warn("Daemon is not running")
				return nil
			}

			if err := process.Terminate(pid); err != nil {
				return err
			}

			pretty.Success(fmt.Sprintf("Sent SIGTERM to process %d", pid))
			pretty.Path("PID file", pidPath)
			return nil
		},
	}
}
