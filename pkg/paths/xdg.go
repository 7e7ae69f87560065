// Package paths provides XDG-compliant path resolution for file-preview.
//
// Runtime files (state record, PID file) live directly in $XDG_RUNTIME_DIR,
// falling back to /tmp. Configuration lives in $XDG_CONFIG_HOME/file-preview,
// falling back to ~/.config/file-preview.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	appName       = "file-preview"
	stateFileName = "file-preview-latest.json"
	pidFileName   = "file-preview.pid"
)

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// ConfigDir returns the file-preview configuration directory.
func ConfigDir() string {
	base := getConfigHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, appName)
}

// ConfigCandidates returns the config files to try, in order of preference.
func ConfigCandidates() []string {
	dir := ConfigDir()
	if dir == "" {
		return nil
	}
	return []string{
		filepath.Join(dir, "config.toml"),
		filepath.Join(dir, "config.yml"),
		filepath.Join(dir, "config.yaml"),
	}
}

// RuntimeDir returns the per-user runtime directory shared by the daemon and
// the status/copy invocations.
func RuntimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir
	}
	return "/tmp"
}

// StateFilePath returns the path of the persisted notification record.
func StateFilePath() string {
	return filepath.Join(RuntimeDir(), stateFileName)
}

// PidFilePath returns the path to the daemon PID file.
func PidFilePath() string {
	return filepath.Join(RuntimeDir(), pidFileName)
}

// Expand expands a leading ~, returning a cleaned absolute path when one can
// be determined. A literal $ is part of the name.
func Expand(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
