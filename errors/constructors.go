package errors

import (
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *Error {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(path string, err error) *Error {
	return Wrap(err, ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", path)).
		WithDetail("path", path)
}

// WatchUnavailable reports that the filesystem notification facility could not be initialised.
func WatchUnavailable(backend string, err error) *Error {
	return Wrap(err, ErrCodeWatchUnavailable,
		fmt.Sprintf("filesystem notifications unavailable (backend %q)", backend)).
		WithDetail("backend", backend)
}

// DaemonRunning creates an error for a second daemon instance.
func DaemonRunning(pid int) *Error {
	return New(ErrCodeDaemonRunning, fmt.Sprintf("daemon already running with PID %d", pid)).
		WithDetail("pid", pid)
}

// StateCorrupt reports a persisted record that cannot be decoded.
func StateCorrupt(path string, reason string) *Error {
	return New(ErrCodeStateCorrupt, fmt.Sprintf("corrupt state file %s: %s", path, reason)).
		WithDetail("path", path)
}

// InvalidInput creates an invalid input error
func InvalidInput(reason string) *Error {
	return New(ErrCodeInvalidInput, reason)
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *Error {
	if err == exec.ErrNotFound {
		return Wrap(err, ErrCodeCommandNotFound, fmt.Sprintf("command not found: %s", cmd)).
			WithDetail("command", cmd)
	}
	if execErr, ok := err.(*exec.Error); ok && execErr.Err == exec.ErrNotFound {
		return Wrap(err, ErrCodeCommandNotFound, fmt.Sprintf("command not found: %s", cmd)).
			WithDetail("command", cmd)
	}

	e := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		e = e.WithDetail("exitCode", exitErr.ExitCode())
	}

	return e
}
