package cli

import (
	"github.com/grovetools/file-preview/config"
	"github.com/grovetools/file-preview/logging"
	"github.com/spf13/cobra"
)

// CommandOptions holds the persistent flags shared by every verb.
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
}

// NewStandardCommand creates a root command with the standard flags and
// styled help.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to config file (default: $XDG_CONFIG_HOME/file-preview/config.toml)")

	SetStyledHelp(cmd)

	return cmd
}

// GetOptions extracts common options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
	}
}

// LoadConfig loads the configuration named by --config, or the first file
// found in the config directory. Loading never fails; problems are logged
// and replaced by defaults.
func LoadConfig(cmd *cobra.Command) *config.Config {
	opts := GetOptions(cmd)
	logger := logging.NewLogger("config")
	if opts.ConfigFile != "" {
		return config.Load(opts.ConfigFile, logger)
	}
	return config.LoadDefault(logger)
}
