// Package source delivers raw filesystem change notifications to the watch
// daemon. The daemon only depends on the Source interface so its loop can be
// driven by a fake in tests.
package source

import (
	"context"
	"runtime"
	"time"

	"github.com/grovetools/file-preview/errors"
	"github.com/sirupsen/logrus"
)

// Kind classifies a raw notification.
type Kind int

const (
	// KindOther is any notification that does not mean "file finished".
	KindOther Kind = iota
	// KindCloseWrite means a file opened for writing was closed.
	KindCloseWrite
	// KindMovedTo means an entry was renamed into a watched directory.
	KindMovedTo
)

func (k Kind) String() string {
	switch k {
	case KindCloseWrite:
		return "close-write"
	case KindMovedTo:
		return "moved-to"
	default:
		return "other"
	}
}

// Event is one raw notification: the watched directory, the entry name
// inside it, and its kind. Dir is empty when the notification could not be
// attributed to a watched directory.
type Event struct {
	Dir  string
	Name string
	Kind Kind
}

// Source is the filesystem subscription capability used by the daemon.
type Source interface {
	// Add subscribes to changes of entries directly inside dir.
	Add(dir string) error
	// Poll waits up to timeout for the next event. ok is false when the
	// timeout elapsed without one.
	Poll(ctx context.Context, timeout time.Duration) (ev Event, ok bool, err error)
	// Close releases the subscription.
	Close() error
}

// New returns the Source for a configured backend name ("auto", "inotify",
// "fsnotify"). "auto" prefers inotify where the platform has it.
func New(backend string, logger *logrus.Entry) (Source, error) {
	switch backend {
	case "inotify":
		return newInotify(logger)
	case "fsnotify":
		return newFsnotifySource(logger)
	case "", "auto":
		if runtime.GOOS == "linux" {
			return newInotify(logger)
		}
		return newFsnotifySource(logger)
	default:
		return nil, errors.InvalidInput("unknown watch backend: " + backend)
	}
}

func newFsnotifySource(logger *logrus.Entry) (Source, error) {
	s, err := NewFsnotify(DefaultSettle, logger)
	if err != nil {
		return nil, err
	}
	return s, nil
}
