// Package cmd wires the file-preview verbs to the daemon and query packages.
package cmd

import (
	"github.com/grovetools/file-preview/cli"
	"github.com/grovetools/file-preview/config"
	"github.com/grovetools/file-preview/errors"
	"github.com/spf13/cobra"
)

// app carries the configuration loaded once per invocation.
type app struct {
	cfg *config.Config
}

// NewRootCmd builds the file-preview command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := cli.NewStandardCommand(
		"file-preview",
		"Surface newly completed files in the status bar",
	)
	root.Long = `Watches directories for files that finish writing (screenshots, downloads)
and exposes the latest one to a status bar module for a short dismiss window.
Run 'file-preview watch' as a user service and point the bar at 'file-preview status'.`
	root.Example = `# Start the daemon
file-preview watch

# Waybar custom module
file-preview status --follow

# Copy the latest file's path
file-preview copy`

	root.Args = cobra.NoArgs
	root.RunE = func(cmd *cobra.Command, args []string) error {
		_ = cmd.Help()
		return errors.InvalidInput("a command is required")
	}
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		a.cfg = cli.LoadConfig(cmd)
		cli.SetupLogging(cmd, a.cfg)
	}

	root.AddCommand(
		newWatchCmd(a),
		newStatusCmd(a),
		newCopyCmd(a),
		newStopCmd(),
		newConfigCmd(a),
		cli.NewVersionCommand("file-preview"),
	)

	return root
}
