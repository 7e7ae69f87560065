// Package notification owns the single "latest new file" slot: publishing a
// record, clearing it, and telling the status bar about both.
package notification

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/grovetools/file-preview/internal/daemon/notifier"
	"github.com/grovetools/file-preview/internal/daemon/store"
	"github.com/sirupsen/logrus"
)

// State publishes and clears the notification record.
type State struct {
	store    *store.Store
	notifier notifier.Notifier
	now      func() time.Time
	logger   *logrus.Entry
}

// New creates a State. A nil now uses time.Now; a nil notifier discards
// notifications.
func New(st *store.Store, n notifier.Notifier, now func() time.Time, logger *logrus.Entry) *State {
	if now == nil {
		now = time.Now
	}
	if n == nil {
		n = notifier.Nop{}
	}
	return &State{store: st, notifier: n, now: now, logger: logger}
}

// Publish records path as the latest file, replacing any previous record.
// An unreadable file is recorded with size 0. Only a persistence failure is
// returned; notify failures are logged.
func (s *State) Publish(ctx context.Context, path string) (store.Record, error) {
	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}

	rec := store.Record{
		Path:       path,
		Name:       filepath.Base(path),
		Size:       size,
		ObservedAt: s.now(),
	}
	if err := s.store.Save(rec); err != nil {
		return store.Record{}, err
	}

	s.notify(ctx)
	return rec, nil
}

// Clear removes the record if present and notifies. Safe to call repeatedly.
func (s *State) Clear(ctx context.Context) error {
	if err := s.store.Remove(); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *State) notify(ctx context.Context) {
	if err := s.notifier.Notify(ctx); err != nil {
		s.logger.WithError(err).Debug("Status bar notify failed")
	}
}
