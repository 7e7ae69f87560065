package source

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/grovetools/file-preview/errors"
	"github.com/sirupsen/logrus"
)

// DefaultSettle is how long a path must stay quiet before the fsnotify
// backend reports it as finished.
const DefaultSettle = 300 * time.Millisecond

// Fsnotify is the portable backend. fsnotify exposes neither close-write nor
// moved-to, so a created or written path is reported as KindCloseWrite once
// no further create/write events arrived for it during the settle window.
// Paths removed or renamed away before settling are forgotten.
type Fsnotify struct {
	watcher *fsnotify.Watcher
	settle  time.Duration
	pending map[string]time.Time
	logger  *logrus.Entry
}

// NewFsnotify creates a portable Source with the given settle window.
func NewFsnotify(settle time.Duration, logger *logrus.Entry) (*Fsnotify, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WatchUnavailable("fsnotify", err)
	}
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Fsnotify{
		watcher: watcher,
		settle:  settle,
		pending: make(map[string]time.Time),
		logger:  logger,
	}, nil
}

func (s *Fsnotify) Add(dir string) error {
	return s.watcher.Add(dir)
}

func (s *Fsnotify) Poll(ctx context.Context, timeout time.Duration) (Event, bool, error) {
	deadline := time.Now().Add(timeout)
	for {
		now := time.Now()
		if ev, ok := s.nextSettled(now); ok {
			return ev, true, nil
		}

		wait := deadline.Sub(now)
		if wait <= 0 {
			return Event{}, false, nil
		}
		if due, ok := s.nextDue(); ok && due.Sub(now) < wait {
			wait = due.Sub(now)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Event{}, false, ctx.Err()
		case fe, ok := <-s.watcher.Events:
			timer.Stop()
			if !ok {
				return Event{}, false, fmt.Errorf("fsnotify event channel closed")
			}
			s.track(fe, time.Now())
		case err, ok := <-s.watcher.Errors:
			timer.Stop()
			if !ok {
				return Event{}, false, fmt.Errorf("fsnotify error channel closed")
			}
			return Event{}, false, err
		case <-timer.C:
		}
	}
}

func (s *Fsnotify) Close() error {
	return s.watcher.Close()
}

func (s *Fsnotify) track(fe fsnotify.Event, now time.Time) {
	switch {
	case fe.Has(fsnotify.Create), fe.Has(fsnotify.Write):
		s.pending[fe.Name] = now
	case fe.Has(fsnotify.Remove), fe.Has(fsnotify.Rename):
		delete(s.pending, fe.Name)
	default:
		s.logger.WithField("event", fe.String()).Debug("Ignoring fsnotify event")
	}
}

// nextSettled pops the oldest pending path whose settle window has passed.
func (s *Fsnotify) nextSettled(now time.Time) (Event, bool) {
	var (
		oldest string
		at     time.Time
	)
	for path, last := range s.pending {
		if now.Sub(last) < s.settle {
			continue
		}
		if oldest == "" || last.Before(at) {
			oldest, at = path, last
		}
	}
	if oldest == "" {
		return Event{}, false
	}
	delete(s.pending, oldest)
	return Event{
		Dir:  filepath.Dir(oldest),
		Name: filepath.Base(oldest),
		Kind: KindCloseWrite,
	}, true
}

// nextDue returns when the earliest pending path settles.
func (s *Fsnotify) nextDue() (time.Time, bool) {
	var (
		due   time.Time
		found bool
	)
	for _, last := range s.pending {
		t := last.Add(s.settle)
		if !found || t.Before(due) {
			due, found = t, true
		}
	}
	return due, found
}
