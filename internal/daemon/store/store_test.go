package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/grovetools/file-preview/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file-preview-latest.json")
	s := New(path)

	observed := time.Unix(1700000000, 250000000)
	rec := Record{Path: "/watch/img.png", Name: "img.png", Size: 2048, ObservedAt: observed}
	require.NoError(t, s.Save(rec))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, rec.Path, got.Path)
	assert.Equal(t, rec.Name, got.Name)
	assert.Equal(t, rec.Size, got.Size)
	assert.WithinDuration(t, observed, got.ObservedAt, time.Microsecond)

	require.NoError(t, s.Remove())
	_, err = s.Load()
	assert.True(t, os.IsNotExist(err))

	// Removing an absent record is fine
	assert.NoError(t, s.Remove())
}

func TestSaveWritesSelfDescribingJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := New(path)
	require.NoError(t, s.Save(Record{Path: "/d/a b.png", Name: "a b.png", Size: 7, ObservedAt: time.Unix(10, 500000000)}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "/d/a b.png", doc["path"])
	assert.Equal(t, "a b.png", doc["name"])
	assert.Equal(t, float64(7), doc["size"])
	assert.InDelta(t, 10.5, doc["time"], 1e-6)
}

func TestNonUTF8PathSurvivesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := New(path)

	latin1 := "/watch/caf\xe9.png"
	require.NoError(t, s.Save(Record{Path: latin1, Name: "caf\xe9.png", Size: 3, ObservedAt: time.Unix(10, 0)}))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, latin1, got.Path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "path_raw")
	assert.Contains(t, doc, "path", "lossy path stays for other readers")
}

func TestUTF8PathHasNoRawCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, New(path).Save(Record{Path: "/watch/café.png", Name: "café.png", ObservedAt: time.Unix(10, 0)}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "path_raw")
}

func TestSaveReplacesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "state.json"))

	require.NoError(t, s.Save(Record{Path: "/a", Name: "a", Size: 1, ObservedAt: time.Now()}))
	require.NoError(t, s.Save(Record{Path: "/b", Name: "b", Size: 2, ObservedAt: time.Now()}))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "/b", got.Path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())
}

func TestLoadCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "{half"},
		{name: "empty", content: ""},
		{name: "missing time", content: `{"path":"/a","name":"a","size":1}`},
		{name: "missing path", content: `{"name":"a","size":1,"time":1}`},
		{name: "wrong type", content: `{"path":"/a","name":"a","size":"big","time":1}`},
		{name: "bad raw path", content: `{"path":"/a","path_raw":"%%%","name":"a","size":1,"time":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "state.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := New(path).Load()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeStateCorrupt), "got %v", err)
		})
	}
}

func TestFresh(t *testing.T) {
	observed := time.Unix(1000, 0)
	rec := Record{ObservedAt: observed}
	dismiss := 10 * time.Second

	assert.True(t, rec.Fresh(observed.Add(5*time.Second), dismiss))
	assert.True(t, rec.Fresh(observed.Add(12*time.Second), dismiss), "grace margin is inclusive")
	assert.False(t, rec.Fresh(observed.Add(12*time.Second+time.Millisecond), dismiss))
	assert.False(t, rec.Fresh(observed.Add(15*time.Second), dismiss))
}

// Readers racing a writer must only ever see complete records.
func TestConcurrentReadersNeverSeeTornRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := New(path)
	require.NoError(t, s.Save(Record{Path: "/start", Name: "start", Size: 0, ObservedAt: time.Now()}))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	failures := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		reader := New(path)
		for {
			select {
			case <-stop:
				return
			default:
			}
			if _, err := reader.Load(); err != nil {
				select {
				case failures <- err:
				default:
				}
				return
			}
		}
	}()

	for i := 0; i < 200; i++ {
		name := filepath.Join("/watch", "file-with-a-fairly-long-name.png")
		require.NoError(t, s.Save(Record{Path: name, Name: filepath.Base(name), Size: int64(i), ObservedAt: time.Now()}))
	}
	close(stop)
	wg.Wait()

	select {
	case err := <-failures:
		t.Fatalf("reader observed a broken record: %v", err)
	default:
	}
}
