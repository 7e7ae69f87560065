// Package store persists the notification record shared between the watch
// daemon and short-lived status/copy invocations.
package store

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grovetools/file-preview/errors"
)

// Store reads and writes the record file at a fixed path.
type Store struct {
	path string
}

// New returns a Store for the record file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the record file location.
func (s *Store) Path() string {
	return s.path
}

// Save replaces the record. The JSON is written to a temporary file in the
// same directory and renamed over the target, so readers see either the old
// record or the new one, never a partial write.
func (s *Store) Save(rec Record) error {
	secs := toUnixSeconds(rec.ObservedAt)
	data, err := json.Marshal(wireRecord{
		Path:    &rec.Path,
		PathRaw: encodeRawPath(rec.Path),
		Name:    &rec.Name,
		Size:    &rec.Size,
		Time:    &secs,
	})
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp record: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write temp record: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp record: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp record: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("replace record: %w", err)
	}
	return nil
}

// Load reads the record. A missing file returns an error satisfying
// os.IsNotExist; undecodable content or a missing key returns STATE_CORRUPT.
func (s *Store) Load() (Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Record{}, err
	}

	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return Record{}, errors.StateCorrupt(s.path, err.Error())
	}
	switch {
	case w.Path == nil:
		return Record{}, errors.StateCorrupt(s.path, "missing path")
	case w.Name == nil:
		return Record{}, errors.StateCorrupt(s.path, "missing name")
	case w.Size == nil:
		return Record{}, errors.StateCorrupt(s.path, "missing size")
	case w.Time == nil:
		return Record{}, errors.StateCorrupt(s.path, "missing time")
	}

	path := *w.Path
	if w.PathRaw != nil {
		raw, err := base64.StdEncoding.DecodeString(*w.PathRaw)
		if err != nil {
			return Record{}, errors.StateCorrupt(s.path, "undecodable path_raw")
		}
		path = string(raw)
	}

	return Record{
		Path:       path,
		Name:       *w.Name,
		Size:       *w.Size,
		ObservedAt: fromUnixSeconds(*w.Time),
	}, nil
}

// Remove deletes the record. A missing file is not an error.
func (s *Store) Remove() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove record: %w", err)
	}
	return nil
}
