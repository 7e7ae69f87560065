package logging

// Config defines the `logging` table of the file-preview config file.
type Config struct {
	// Level is the minimum log level to output (e.g., "debug", "info", "warn", "error").
	// Can be overridden by the FILE_PREVIEW_LOG_LEVEL environment variable.
	Level string `mapstructure:"level" yaml:"level" toml:"level" json:"level,omitempty" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=warning,enum=error"`

	// ReportCaller, if true, includes the file, line, and function name in the log output.
	ReportCaller bool `mapstructure:"report_caller" yaml:"report_caller" toml:"report_caller" json:"report_caller,omitempty"`

	// File configures logging to a rotating file.
	File FileSinkConfig `mapstructure:"file" yaml:"file" toml:"file" json:"file,omitempty"`

	// Format configures the appearance of the log output.
	Format FormatConfig `mapstructure:"format" yaml:"format" toml:"format" json:"format,omitempty"`
}

// FileSinkConfig configures the file logging sink.
type FileSinkConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" toml:"enabled" json:"enabled,omitempty"`
	// Path is the full path to the log file. ~ is expanded.
	Path       string `mapstructure:"path" yaml:"path" toml:"path" json:"path,omitempty"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb" json:"max_size_mb,omitempty"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups" toml:"max_backups" json:"max_backups,omitempty"`
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset can be "default" (rich text), "simple" (minimal text), or "json".
	Preset string `mapstructure:"preset" yaml:"preset" toml:"preset" json:"preset,omitempty" jsonschema:"enum=default,enum=simple,enum=json"`
	// DisableTimestamp disables the timestamp from the "default" and "simple" formats.
	DisableTimestamp bool `mapstructure:"disable_timestamp" yaml:"disable_timestamp" toml:"disable_timestamp" json:"disable_timestamp,omitempty"`
	// DisableComponent disables the component name from the "default" and "simple" formats.
	DisableComponent bool `mapstructure:"disable_component" yaml:"disable_component" toml:"disable_component" json:"disable_component,omitempty"`
	// StructuredToStderr controls when structured logs are sent to stderr.
	// Can be "always" (default), "auto", or "never".
	StructuredToStderr string `mapstructure:"structured_to_stderr" yaml:"structured_to_stderr" toml:"structured_to_stderr" json:"structured_to_stderr,omitempty" jsonschema:"enum=always,enum=auto,enum=never"`
}

// DefaultConfig returns the logging settings used when the config file has none.
func DefaultConfig() Config {
	return Config{
		Level: "info",
		File: FileSinkConfig{
			MaxSizeMB:  5,
			MaxBackups: 2,
		},
		Format: FormatConfig{
			Preset:             "default",
			StructuredToStderr: "always",
		},
	}
}
