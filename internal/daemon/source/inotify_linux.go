//go:build linux

package source

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unsafe"

	"github.com/grovetools/file-preview/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// watchMask only asks for the two notifications that mean a file is complete.
const watchMask = unix.IN_CLOSE_WRITE | unix.IN_MOVED_TO

// inotify is the native Linux backend. It is not safe for concurrent use;
// the daemon polls it from a single goroutine.
type inotify struct {
	fd     int
	dirs   map[int32]string
	queue  []Event
	buf    [unix.SizeofInotifyEvent * 4096]byte
	logger *logrus.Entry
}

func newInotify(logger *logrus.Entry) (Source, error) {
	fd, err := unix.InotifyInit1(unix.IN_CLOEXEC | unix.IN_NONBLOCK)
	if err != nil {
		return nil, errors.WatchUnavailable("inotify", err)
	}
	return &inotify{
		fd:     fd,
		dirs:   make(map[int32]string),
		logger: logger,
	}, nil
}

func (s *inotify) Add(dir string) error {
	wd, err := unix.InotifyAddWatch(s.fd, dir, watchMask)
	if err != nil {
		return fmt.Errorf("inotify_add_watch %s: %w", dir, err)
	}
	s.dirs[int32(wd)] = dir
	return nil
}

func (s *inotify) Poll(ctx context.Context, timeout time.Duration) (Event, bool, error) {
	if ev, ok := s.pop(); ok {
		return ev, true, nil
	}
	if err := ctx.Err(); err != nil {
		return Event{}, false, err
	}

	ms := int(timeout / time.Millisecond)
	if ms < 0 {
		ms = 0
	}
	fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, ms)
	if err != nil {
		if err == unix.EINTR {
			// A signal arrived; let the caller look at its context.
			return Event{}, false, nil
		}
		return Event{}, false, fmt.Errorf("poll inotify: %w", err)
	}
	if n == 0 {
		return Event{}, false, nil
	}

	if err := s.read(); err != nil {
		return Event{}, false, err
	}
	ev, ok := s.pop()
	return ev, ok, nil
}

func (s *inotify) Close() error {
	return unix.Close(s.fd)
}

func (s *inotify) pop() (Event, bool) {
	if len(s.queue) == 0 {
		return Event{}, false
	}
	ev := s.queue[0]
	s.queue = s.queue[1:]
	return ev, true
}

// read drains one batch of raw inotify records into the queue.
func (s *inotify) read() error {
	n, err := unix.Read(s.fd, s.buf[:])
	if err != nil {
		if err == unix.EAGAIN || err == unix.EINTR {
			return nil
		}
		return fmt.Errorf("read inotify: %w", err)
	}
	if n < unix.SizeofInotifyEvent {
		return fmt.Errorf("short inotify read (%d bytes)", n)
	}

	offset := 0
	for offset <= n-unix.SizeofInotifyEvent {
		raw := (*unix.InotifyEvent)(unsafe.Pointer(&s.buf[offset]))
		start := offset + unix.SizeofInotifyEvent
		end := start + int(raw.Len)
		if end > n {
			s.logger.WithField("bytes", n).Debug("Truncated inotify record dropped")
			break
		}
		name := strings.TrimRight(string(s.buf[start:end]), "\x00")
		offset = end

		switch {
		case raw.Mask&unix.IN_Q_OVERFLOW != 0:
			s.logger.Warn("inotify queue overflowed, some files may be missed")
			continue
		case raw.Mask&unix.IN_IGNORED != 0:
			if dir, ok := s.dirs[raw.Wd]; ok {
				s.logger.WithField("dir", dir).Info("Watched directory went away")
				delete(s.dirs, raw.Wd)
			}
			continue
		}

		s.queue = append(s.queue, Event{
			Dir:  s.dirs[raw.Wd],
			Name: name,
			Kind: kindFromMask(raw.Mask),
		})
	}
	return nil
}

func kindFromMask(mask uint32) Kind {
	switch {
	case mask&unix.IN_CLOSE_WRITE != 0:
		return KindCloseWrite
	case mask&unix.IN_MOVED_TO != 0:
		return KindMovedTo
	default:
		return KindOther
	}
}
