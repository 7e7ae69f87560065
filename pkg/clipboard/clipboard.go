// Package clipboard hands a path to the desktop clipboard.
package clipboard

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/grovetools/file-preview/command"
	"github.com/grovetools/file-preview/errors"
)

// Clipboard receives text.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}

// Command passes text as the final argument of an external program,
// e.g. `wl-copy <path>`.
type Command struct {
	Argv     []string
	Executor command.Executor
	Timeout  time.Duration
}

// Copy runs the configured program with text appended.
func (c *Command) Copy(ctx context.Context, text string) error {
	if len(c.Argv) == 0 {
		return errors.InvalidInput("clipboard command is empty")
	}
	args := append(append([]string(nil), c.Argv[1:]...), text)
	return command.Run(ctx, c.Executor, c.Timeout, c.Argv[0], args...)
}

// System uses the platform clipboard (xclip/xsel/wl-clipboard on Linux,
// pbcopy on macOS).
type System struct{}

// Copy writes text to the system clipboard.
func (System) Copy(_ context.Context, text string) error {
	if clipboard.Unsupported {
		return errors.New(errors.ErrCodeCommandNotFound, "no clipboard utility available")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return errors.Wrap(err, errors.ErrCodeCommandFailed, "failed to write system clipboard")
	}
	return nil
}

// New returns a Command clipboard for a non-empty argv and the System
// clipboard otherwise.
func New(argv []string) Clipboard {
	if len(argv) == 0 {
		return System{}
	}
	return &Command{
		Argv:     append([]string(nil), argv...),
		Executor: &command.RealExecutor{},
		Timeout:  command.DefaultTimeout,
	}
}
