package command

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/grovetools/file-preview/errors"
)

// DefaultTimeout bounds every helper program we spawn (pkill, wl-copy).
const DefaultTimeout = 2 * time.Second

// Executor creates exec.Cmd instances. Tests swap in an implementation that
// records invocations instead of spawning processes.
type Executor interface {
	// CommandContext creates a new context-aware exec.Cmd instance.
	CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd
}

// RealExecutor is the production Executor backed by os/exec.
type RealExecutor struct{}

// CommandContext creates a standard context-aware exec.Cmd.
func (e *RealExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}

// Run executes name with args, waiting at most timeout (DefaultTimeout when
// zero). Output is captured and discarded. Failures come back as
// COMMAND_NOT_FOUND or COMMAND_FAILED errors.
func Run(ctx context.Context, ex Executor, timeout time.Duration, name string, args ...string) error {
	if ex == nil {
		ex = &RealExecutor{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := ex.CommandContext(ctx, name, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		e := errors.CommandFailed(strings.Join(append([]string{name}, args...), " "), err)
		if trimmed := strings.TrimSpace(string(out)); trimmed != "" {
			e = e.WithDetail("output", trimmed)
		}
		return e
	}
	return nil
}
