package cli

import (
	"github.com/grovetools/file-preview/config"
	"github.com/grovetools/file-preview/logging"
	"github.com/spf13/cobra"
)

// SetupLogging applies the configured logging settings, raising the level to
// debug when --verbose is set.
func SetupLogging(cmd *cobra.Command, cfg *config.Config) {
	lc := cfg.Logging
	if GetOptions(cmd).Verbose {
		lc.Level = "debug"
	}
	logging.Setup(lc)
}
