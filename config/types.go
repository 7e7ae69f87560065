package config

import (
	"time"

	"github.com/grovetools/file-preview/logging"
)

// Backend names accepted by the `backend` key.
const (
	BackendAuto     = "auto"
	BackendInotify  = "inotify"
	BackendFsnotify = "fsnotify"
)

// Config is the effective configuration for one process. It is built once by
// Load and passed by pointer to the daemon and the query verbs; nothing
// mutates it afterwards.
type Config struct {
	// WatchDirs are absolute directories to watch (~ expanded).
	WatchDirs []string
	// SignalNumber is the RTMIN offset raised toward the status bar on every
	// publish and clear.
	SignalNumber int
	// Dismiss is how long a notification stays active.
	Dismiss time.Duration
	// IgnoreSuffixes are literal filename suffixes that never notify.
	IgnoreSuffixes []string
	// Backend selects the filesystem notification implementation.
	Backend string
	// StatusBarProcess is the process name the refresh signal is sent to.
	StatusBarProcess string
	// ClipboardCommand receives the path as its last argument. Empty means
	// use the system clipboard library.
	ClipboardCommand []string
	Logging          logging.Config

	// Source is the file the config was read from, empty for built-in defaults.
	Source string
}

// File mirrors the on-disk config file. It describes the format (config
// schema) and renders the effective settings (config show); decoding is done
// key by key in Load.
type File struct {
	WatchDirs        []string       `toml:"watch_dirs" yaml:"watch_dirs" jsonschema:"description=Directories to watch for new files (~ is expanded)"`
	SignalNumber     int            `toml:"signal_number" yaml:"signal_number" jsonschema:"minimum=1,maximum=30,description=Real-time signal offset (SIGRTMIN+N) sent to the status bar"`
	DismissSeconds   float64        `toml:"dismiss_seconds" yaml:"dismiss_seconds" jsonschema:"exclusiveMinimum=0,maximum=9223372036,description=Seconds before a notification expires"`
	IgnoreSuffixes   []string       `toml:"ignore_suffixes" yaml:"ignore_suffixes" jsonschema:"description=Literal filename suffixes to ignore (partial downloads)"`
	Backend          string         `toml:"backend" yaml:"backend" jsonschema:"enum=auto,enum=inotify,enum=fsnotify,description=Filesystem notification backend"`
	StatusBarProcess string         `toml:"status_bar_process" yaml:"status_bar_process" jsonschema:"description=Process name that receives the refresh signal"`
	ClipboardCommand []string       `toml:"clipboard_command" yaml:"clipboard_command" jsonschema:"description=Command used by copy; empty list uses the system clipboard"`
	Logging          logging.Config `toml:"logging" yaml:"logging" jsonschema:"description=Logging settings"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		WatchDirs:        expandAll([]string{"~/Pictures/Screenshots", "~/Downloads"}),
		SignalNumber:     8,
		Dismiss:          10 * time.Second,
		IgnoreSuffixes:   []string{".part", ".crdownload", ".tmp"},
		Backend:          BackendAuto,
		StatusBarProcess: "waybar",
		ClipboardCommand: []string{"wl-copy"},
		Logging:          logging.DefaultConfig(),
	}
}

// DismissSeconds returns the dismiss window in (fractional) seconds.
func (c *Config) DismissSeconds() float64 {
	return c.Dismiss.Seconds()
}

// ToFile returns the effective settings in config file form.
func (c *Config) ToFile() File {
	return File{
		WatchDirs:        append([]string(nil), c.WatchDirs...),
		SignalNumber:     c.SignalNumber,
		DismissSeconds:   c.DismissSeconds(),
		IgnoreSuffixes:   append([]string(nil), c.IgnoreSuffixes...),
		Backend:          c.Backend,
		StatusBarProcess: c.StatusBarProcess,
		ClipboardCommand: append([]string{}, c.ClipboardCommand...),
		Logging:          c.Logging,
	}
}
