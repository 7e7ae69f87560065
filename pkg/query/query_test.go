package query

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/grovetools/file-preview/internal/daemon/store"
	"github.com/grovetools/file-preview/pkg/clipboard"
	"github.com/grovetools/file-preview/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingClipboard struct {
	copied []string
}

func (r *recordingClipboard) Copy(_ context.Context, text string) error {
	r.copied = append(r.copied, text)
	return nil
}

var _ clipboard.Clipboard = (*recordingClipboard)(nil)

func newReader(t *testing.T, clock *testutil.Clock) *Reader {
	t.Helper()
	return &Reader{
		Store:   store.New(filepath.Join(t.TempDir(), "file-preview-latest.json")),
		Dismiss: 10 * time.Second,
		Now:     clock.Now,
		Logger:  testutil.QuietLogger(),
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{2048, "2.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
		{1024 * 1024 * 1024 * 1024, "1.0 TB"},
		{2048 * 1024 * 1024 * 1024 * 1024, "2048.0 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanSize(tt.bytes))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "short", in: "img.png", want: "img.png"},
		{name: "exactly limit", in: "abcdefghijklmn.png", want: "abcdefghijklmn.png"},
		{name: "over limit", in: "abcdefghijklmno.png", want: "abcdefghijklmno…"},
		{name: "multibyte runes", in: "スクリーンショット 2024-01-01.png", want: "スクリーンショット 2024-…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in))
		})
	}
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t, `{"text":"","tooltip":"","class":"empty","alt":"empty"}`, Empty().Line())

	s := Active(store.Record{Path: "/watch/img.png", Name: "img.png", Size: 2048})
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(s.Line()), &got))
	assert.Equal(t, map[string]string{
		"text":    " img.png",
		"tooltip": "img.png\n2.0 KB",
		"class":   "active",
		"alt":     "active",
	}, got)
}

func TestConcreteScenario(t *testing.T) {
	clock := testutil.NewClock(time.Unix(1700000000, 0))
	r := newReader(t, clock)
	require.NoError(t, r.Store.Save(store.Record{
		Path: "/watch/img.png", Name: "img.png", Size: 2048, ObservedAt: clock.Now(),
	}))
	start := clock.Now()

	clock.Set(start.Add(5 * time.Second))
	s := r.Status()
	assert.Equal(t, ClassActive, s.Class)
	assert.Equal(t, " img.png", s.Text)
	assert.Equal(t, "img.png\n2.0 KB", s.Tooltip)

	// Inside the grace margin the reader still shows it
	clock.Set(start.Add(12 * time.Second))
	assert.Equal(t, ClassActive, r.Status().Class)

	// Past D+2 the reader drops it on its own
	clock.Set(start.Add(15 * time.Second))
	assert.Equal(t, Empty(), r.Status())
}

func TestStaleEqualsMissing(t *testing.T) {
	clock := testutil.NewClock(time.Unix(1700000000, 0))
	missing := newReader(t, clock)

	stale := newReader(t, clock)
	require.NoError(t, stale.Store.Save(store.Record{
		Path: "/a", Name: "a", Size: 1, ObservedAt: clock.Now().Add(-13 * time.Second),
	}))

	corrupt := newReader(t, clock)
	require.NoError(t, os.WriteFile(corrupt.Store.Path(), []byte(`{"path":"/a"`), 0644))

	assert.Equal(t, missing.Status(), stale.Status())
	assert.Equal(t, missing.Status(), corrupt.Status())
	assert.Equal(t, ClassEmpty, missing.Status().Class)
}

func TestRoundTripWithPublishedFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "Screenshot_20240101_120000.png", 300)

	clock := testutil.NewClock(time.Now())
	r := newReader(t, clock)
	require.NoError(t, r.Store.Save(store.Record{Path: path, Name: filepath.Base(path), Size: 300, ObservedAt: clock.Now()}))

	s := r.Status()
	assert.Equal(t, ClassActive, s.Class)
	assert.Equal(t, " Screenshot_2024…", s.Text)
	assert.True(t, strings.HasPrefix(s.Tooltip, "Screenshot_20240101_120000.png\n"))
}

func TestCopy(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "img.png", 10)
	clock := testutil.NewClock(time.Unix(1700000000, 0))

	t.Run("fresh and present", func(t *testing.T) {
		r := newReader(t, clock)
		require.NoError(t, r.Store.Save(store.Record{Path: path, Name: "img.png", Size: 10, ObservedAt: clock.Now()}))
		cb := &recordingClipboard{}

		copied, err := r.Copy(context.Background(), cb)
		require.NoError(t, err)
		assert.True(t, copied)
		assert.Equal(t, []string{path}, cb.copied)
	})

	t.Run("absent", func(t *testing.T) {
		r := newReader(t, clock)
		cb := &recordingClipboard{}
		copied, err := r.Copy(context.Background(), cb)
		require.NoError(t, err)
		assert.False(t, copied)
		assert.Empty(t, cb.copied)
	})

	t.Run("stale", func(t *testing.T) {
		r := newReader(t, clock)
		require.NoError(t, r.Store.Save(store.Record{Path: path, Name: "img.png", Size: 10, ObservedAt: clock.Now().Add(-time.Minute)}))
		cb := &recordingClipboard{}
		copied, err := r.Copy(context.Background(), cb)
		require.NoError(t, err)
		assert.False(t, copied)
		assert.Empty(t, cb.copied)
	})

	t.Run("name is not utf-8", func(t *testing.T) {
		raw := filepath.Join(dir, "caf\xe9.png")
		if err := os.WriteFile(raw, []byte("x"), 0644); err != nil {
			t.Skipf("filesystem rejects non-UTF-8 names: %v", err)
		}
		r := newReader(t, clock)
		require.NoError(t, r.Store.Save(store.Record{Path: raw, Name: filepath.Base(raw), Size: 1, ObservedAt: clock.Now()}))
		cb := &recordingClipboard{}

		copied, err := r.Copy(context.Background(), cb)
		require.NoError(t, err)
		assert.True(t, copied)
		assert.Equal(t, []string{raw}, cb.copied)
	})

	t.Run("file deleted", func(t *testing.T) {
		r := newReader(t, clock)
		require.NoError(t, r.Store.Save(store.Record{Path: filepath.Join(dir, "gone.png"), Name: "gone.png", ObservedAt: clock.Now()}))
		cb := &recordingClipboard{}
		copied, err := r.Copy(context.Background(), cb)
		require.NoError(t, err)
		assert.False(t, copied)
		assert.Empty(t, cb.copied)
	})
}

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Split(strings.TrimSpace(b.buf.String()), "\n")
}

func TestFollow(t *testing.T) {
	r := &Reader{
		Store:   store.New(filepath.Join(t.TempDir(), "file-preview-latest.json")),
		Dismiss: 10 * time.Second,
		Logger:  testutil.QuietLogger(),
	}
	out := &syncBuffer{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Follow(ctx, out, 20*time.Millisecond) }()

	require.Eventually(t, func() bool { return len(out.Lines()) == 1 && out.Lines()[0] != "" }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, Empty().Line(), out.Lines()[0])

	require.NoError(t, r.Store.Save(store.Record{Path: "/w/new.png", Name: "new.png", Size: 1, ObservedAt: time.Now()}))
	require.Eventually(t, func() bool { return len(out.Lines()) == 2 }, 2*time.Second, 5*time.Millisecond)
	assert.Contains(t, out.Lines()[1], `"class":"active"`)

	// Unchanged output is not repeated
	time.Sleep(100 * time.Millisecond)
	assert.Len(t, out.Lines(), 2)

	require.NoError(t, r.Store.Remove())
	require.Eventually(t, func() bool { return len(out.Lines()) == 3 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, Empty().Line(), out.Lines()[2])

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("follow did not return after cancel")
	}
}
