// Package query reads the notification record on behalf of the short-lived
// status and copy verbs. It never subscribes to the watched directories.
package query

import (
	"context"
	"os"
	"time"

	"github.com/grovetools/file-preview/internal/daemon/store"
	"github.com/grovetools/file-preview/pkg/clipboard"
	"github.com/sirupsen/logrus"
)

// Reader resolves the current notification.
type Reader struct {
	Store   *store.Store
	Dismiss time.Duration
	// Now defaults to time.Now.
	Now    func() time.Time
	Logger *logrus.Entry
}

// Current returns the record and true when one exists and is still fresh.
// A missing, corrupt, or stale record all mean "nothing to show".
func (r *Reader) Current() (store.Record, bool) {
	rec, err := r.Store.Load()
	if err != nil {
		if !os.IsNotExist(err) && r.Logger != nil {
			r.Logger.WithError(err).Debug("Ignoring unreadable state file")
		}
		return store.Record{}, false
	}
	if !rec.Fresh(r.now(), r.Dismiss) {
		return store.Record{}, false
	}
	return rec, true
}

// Status returns the bar output for the current record.
func (r *Reader) Status() Status {
	rec, ok := r.Current()
	if !ok {
		return Empty()
	}
	return Active(rec)
}

// Copy hands the current record's path to cb. It is a no-op, returning
// false, when there is no fresh record or the file no longer exists.
func (r *Reader) Copy(ctx context.Context, cb clipboard.Clipboard) (bool, error) {
	rec, ok := r.Current()
	if !ok {
		return false, nil
	}
	if _, err := os.Stat(rec.Path); err != nil {
		return false, nil
	}
	if err := cb.Copy(ctx, rec.Path); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Reader) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
