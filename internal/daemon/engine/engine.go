// Package engine runs the watch daemon loop: it feeds filesystem events
// through the filter, publishes accepted files and expires them.
package engine

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/grovetools/file-preview/internal/daemon/filter"
	"github.com/grovetools/file-preview/internal/daemon/notification"
	"github.com/grovetools/file-preview/internal/daemon/pidfile"
	"github.com/grovetools/file-preview/internal/daemon/source"
	"github.com/sirupsen/logrus"
)

// DefaultPollInterval bounds how long the loop waits for an event before it
// re-checks expiry.
const DefaultPollInterval = 500 * time.Millisecond

// Phase is the daemon lifecycle state.
type Phase int32

const (
	PhaseStarting Phase = iota
	PhaseRunning
	PhaseStopping
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseStarting:
		return "starting"
	case PhaseRunning:
		return "running"
	case PhaseStopping:
		return "stopping"
	case PhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Options wires an Engine.
type Options struct {
	Source    source.Source
	Filter    *filter.Filter
	Seen      *filter.SeenSet
	State     *notification.State
	PidPath   string
	WatchDirs []string
	Dismiss   time.Duration

	// PollInterval defaults to DefaultPollInterval.
	PollInterval time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
	// HandleSignals turns SIGINT and SIGTERM into a clean shutdown.
	HandleSignals bool
}

// Engine is the single-goroutine daemon loop.
type Engine struct {
	opts   Options
	expiry expiry
	phase  atomic.Int32
	logger *logrus.Entry
}

// New creates an Engine.
func New(opts Options, logger *logrus.Entry) *Engine {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Seen == nil {
		opts.Seen = filter.NewSeenSet()
	}
	return &Engine{opts: opts, logger: logger}
}

// Phase returns the current lifecycle state. Safe from any goroutine.
func (e *Engine) Phase() Phase {
	return Phase(e.phase.Load())
}

func (e *Engine) setPhase(p Phase) {
	e.phase.Store(int32(p))
	e.logger.WithField("phase", p.String()).Debug("Daemon phase changed")
}

// Run blocks until ctx is cancelled (or a handled signal arrives), then
// clears the notification, removes the PID file and closes the source.
// The only errors returned come from startup.
func (e *Engine) Run(ctx context.Context) error {
	e.setPhase(PhaseStarting)

	if err := pidfile.Acquire(e.opts.PidPath); err != nil {
		_ = e.opts.Source.Close()
		e.setPhase(PhaseStopped)
		return err
	}

	if e.opts.HandleSignals {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
	}

	watched := e.subscribe()
	e.logger.WithFields(logrus.Fields{
		"dirs":    watched,
		"dismiss": e.opts.Dismiss.String(),
		"pid":     os.Getpid(),
	}).Info("Watching for new files")

	e.setPhase(PhaseRunning)
	e.loop(ctx)

	e.setPhase(PhaseStopping)
	e.shutdown(context.WithoutCancel(ctx))
	e.setPhase(PhaseStopped)
	return nil
}

// subscribe adds every configured directory that exists. Missing or
// unwatchable directories are logged and skipped.
func (e *Engine) subscribe() []string {
	var watched []string
	for _, dir := range e.opts.WatchDirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			e.logger.WithField("dir", dir).Warn("Watch directory missing, skipping")
			continue
		}
		if err := e.opts.Source.Add(dir); err != nil {
			e.logger.WithField("dir", dir).WithError(err).Warn("Failed to watch directory, skipping")
			continue
		}
		watched = append(watched, dir)
	}
	return watched
}

func (e *Engine) loop(ctx context.Context) {
	for ctx.Err() == nil {
		ev, ok, err := e.opts.Source.Poll(ctx, e.opts.PollInterval)
		if err != nil && ctx.Err() == nil {
			e.logger.WithError(err).Warn("Filesystem poll failed")
		}

		if e.expiry.due(e.opts.Now()) {
			e.expiry.disarm()
			if err := e.opts.State.Clear(ctx); err != nil {
				e.logger.WithError(err).Warn("Failed to clear expired notification")
			} else {
				e.logger.Debug("Notification expired")
			}
		}

		if ok {
			e.handle(ctx, ev)
		}
	}
}

func (e *Engine) handle(ctx context.Context, ev source.Event) {
	path, ok := e.opts.Filter.Check(ev)
	if !ok {
		return
	}
	e.opts.Seen.Add(path)

	rec, err := e.opts.State.Publish(ctx, path)
	if err != nil {
		e.logger.WithError(err).WithField("path", path).Warn("Failed to publish notification")
		return
	}
	e.expiry.arm(rec.ObservedAt.Add(e.opts.Dismiss))

	e.logger.WithFields(logrus.Fields{
		"path": rec.Path,
		"size": rec.Size,
		"kind": ev.Kind.String(),
	}).Info("New file")
}

func (e *Engine) shutdown(ctx context.Context) {
	if err := e.opts.State.Clear(ctx); err != nil {
		e.logger.WithError(err).Debug("Clear on shutdown failed")
	}
	e.expiry.disarm()
	if err := pidfile.Release(e.opts.PidPath); err != nil {
		e.logger.WithError(err).Debug("Failed to remove pid file")
	}
	if err := e.opts.Source.Close(); err != nil {
		e.logger.WithError(err).Debug("Failed to close watch source")
	}
	e.logger.Info("Daemon stopped")
}
