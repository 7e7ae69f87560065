// Package filter decides which raw filesystem notifications are new,
// completed files worth surfacing.
package filter

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/grovetools/file-preview/internal/daemon/source"
	"github.com/sirupsen/logrus"
)

// SeenSet records paths already reported during this daemon lifetime.
// It is never pruned and is only touched from the daemon loop.
type SeenSet struct {
	paths map[string]struct{}
}

// NewSeenSet returns an empty set.
func NewSeenSet() *SeenSet {
	return &SeenSet{paths: make(map[string]struct{})}
}

// Add marks path as reported.
func (s *SeenSet) Add(path string) {
	s.paths[path] = struct{}{}
}

// Has reports whether path was already reported.
func (s *SeenSet) Has(path string) bool {
	_, ok := s.paths[path]
	return ok
}

// Len returns the number of reported paths.
func (s *SeenSet) Len() int {
	return len(s.paths)
}

// Filter classifies events as rejected or as a candidate new file.
type Filter struct {
	suffixes []string
	seen     *SeenSet
	logger   *logrus.Entry
}

// New creates a Filter with the given literal ignore suffixes.
func New(ignoreSuffixes []string, seen *SeenSet, logger *logrus.Entry) *Filter {
	return &Filter{
		suffixes: append([]string(nil), ignoreSuffixes...),
		seen:     seen,
		logger:   logger,
	}
}

// Check returns the full path and true when ev is a qualifying event.
// Rules apply in order and the first match rejects. The caller must add an
// accepted path to the SeenSet before checking the next event.
func (f *Filter) Check(ev source.Event) (string, bool) {
	if ev.Kind != source.KindCloseWrite && ev.Kind != source.KindMovedTo {
		return f.reject(ev, "kind")
	}
	if ev.Name == "" || strings.HasPrefix(ev.Name, ".") {
		return f.reject(ev, "hidden")
	}
	for _, suffix := range f.suffixes {
		if strings.HasSuffix(ev.Name, suffix) {
			return f.reject(ev, "suffix")
		}
	}
	if ev.Dir == "" {
		return f.reject(ev, "unknown-dir")
	}

	path := filepath.Join(ev.Dir, ev.Name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return f.reject(ev, "not-regular")
	}
	if f.seen.Has(path) {
		return f.reject(ev, "seen")
	}
	return path, true
}

func (f *Filter) reject(ev source.Event, reason string) (string, bool) {
	f.logger.WithFields(logrus.Fields{
		"dir":    ev.Dir,
		"name":   ev.Name,
		"kind":   ev.Kind.String(),
		"reason": reason,
	}).Debug("Event rejected")
	return "", false
}
