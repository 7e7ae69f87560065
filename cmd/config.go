package cmd

import (
	"fmt"

	"github.com/grovetools/file-preview/config"
	"github.com/grovetools/file-preview/errors"
	"github.com/grovetools/file-preview/logging"
	"github.com/grovetools/file-preview/schema"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	cmd.AddCommand(newConfigShowCmd(a), newConfigSchemaCmd(), newConfigValidateCmd(a))
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file := a.cfg.ToFile()

			var data []byte
			var err error
			switch format {
			case "toml":
				data, err = toml.Marshal(file)
			case "yaml":
				data, err = yaml.Marshal(file)
			default:
				return errors.InvalidInput(fmt.Sprintf("unknown format %q (want toml or yaml)", format))
			}
			if err != nil {
				return fmt.Errorf("failed to render config: %w", err)
			}

			out := cmd.OutOrStdout()
			pretty := logging.NewPrettyLogger().WithWriter(cmd.ErrOrStderr())
			if a.cfg.Source != "" {
				pretty.Path("Source", a.cfg.Source)
			} else {
				pretty.Info("No config file found, showing built-in defaults")
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "toml", "Output format: toml or yaml")
	return cmd
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.GenerateSchema()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Check a config file against the schema",
		Long: `Reports every problem in a config file at once. Loading itself is lenient
(bad keys fall back to defaults), so this is the way to find out what would be
ignored. Without a path, the file the current invocation loaded is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Source
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return errors.InvalidInput("no config file found; pass a path")
			}

			doc, err := config.ReadDocument(path)
			if err != nil {
				return err
			}
			v, err := schema.NewValidator()
			if err != nil {
				return err
			}
			problems, err := v.Validate(doc)
			if err != nil {
				return err
			}

			pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
			if len(problems) == 0 {
				pretty.Success(fmt.Sprintf("%s is valid", path))
				return nil
			}
			for _, p := range problems {
				pretty.Warn(p)
			}
			return errors.ConfigInvalid(path, fmt.Errorf("%d schema violation(s)", len(problems)))
		},
	}
}
