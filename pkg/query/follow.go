package query

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultFollowTick re-evaluates the status even without file activity so
// records drop off the bar once they go stale.
const DefaultFollowTick = time.Second

// Follow writes the current status line to w, then a new line each time the
// output changes, until ctx is cancelled. Changes are noticed through a
// watch on the state file's directory and a periodic tick. When the
// directory cannot be watched the tick alone drives updates.
func (r *Reader) Follow(ctx context.Context, w io.Writer, tick time.Duration) error {
	if tick <= 0 {
		tick = DefaultFollowTick
	}

	last := r.Status().Line()
	if _, err := fmt.Fprintln(w, last); err != nil {
		return err
	}

	var events chan fsnotify.Event
	var watchErrors chan error
	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		defer watcher.Close()
		if err = watcher.Add(filepath.Dir(r.Store.Path())); err == nil {
			events, watchErrors = watcher.Events, watcher.Errors
		}
	}
	if err != nil && r.Logger != nil {
		r.Logger.WithError(err).Debug("State directory watch unavailable, polling only")
	}

	stateName := filepath.Base(r.Store.Path())
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Base(ev.Name) != stateName {
				continue
			}
		case err, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				continue
			}
			if r.Logger != nil {
				r.Logger.WithError(err).Debug("State directory watch error")
			}
			continue
		case <-ticker.C:
		}

		line := r.Status().Line()
		if line == last {
			continue
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		last = line
	}
}
