// Package notifier tells the status bar that the notification record changed.
package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/grovetools/file-preview/command"
)

// Notifier is signalled after every publish and clear.
type Notifier interface {
	Notify(ctx context.Context) error
}

// StatusBar raises SIGRTMIN+Signal toward every process named Process by
// running pkill. The status bar re-runs its `status` module on receipt.
type StatusBar struct {
	Process  string
	Signal   int
	Executor command.Executor
	Timeout  time.Duration
}

// NewStatusBar returns a StatusBar notifier using the real executor.
func NewStatusBar(process string, signal int) *StatusBar {
	return &StatusBar{
		Process:  process,
		Signal:   signal,
		Executor: &command.RealExecutor{},
		Timeout:  command.DefaultTimeout,
	}
}

// Args returns the pkill argument list.
func (n *StatusBar) Args() []string {
	return []string{fmt.Sprintf("-RTMIN+%d", n.Signal), n.Process}
}

// Notify runs pkill. pkill exits 1 when no process matched; that surfaces as
// a COMMAND_FAILED error which callers log and ignore.
func (n *StatusBar) Notify(ctx context.Context) error {
	return command.Run(ctx, n.Executor, n.Timeout, "pkill", n.Args()...)
}

// Nop discards notifications.
type Nop struct{}

// Notify does nothing.
func (Nop) Notify(context.Context) error { return nil }
