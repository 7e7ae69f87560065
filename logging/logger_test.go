package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withStderr(t *testing.T, w *bytes.Buffer) {
	t.Helper()
	prev := stderr
	stderr = w
	t.Cleanup(func() {
		stderr = prev
		Setup(DefaultConfig())
	})
}

func TestNewLogger(t *testing.T) {
	Setup(DefaultConfig())
	logger := NewLogger("test-component")
	require.NotNil(t, logger)
	assert.Equal(t, "test-component", logger.Data["component"])

	// Cached per component
	assert.Same(t, logger, NewLogger("test-component"))
}

func TestSetupAppliesLevelAndStderr(t *testing.T) {
	var buf bytes.Buffer
	withStderr(t, &buf)
	t.Setenv("FILE_PREVIEW_LOG_LEVEL", "")

	cfg := DefaultConfig()
	cfg.Level = "warn"
	Setup(cfg)

	logger := NewLogger("daemon")
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "[daemon]")
	assert.Contains(t, out, "shown")
}

func TestEnvLevelOverridesConfig(t *testing.T) {
	var buf bytes.Buffer
	withStderr(t, &buf)
	t.Setenv("FILE_PREVIEW_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	cfg.Level = "error"
	Setup(cfg)

	NewLogger("env").Debug("verbose line")
	assert.Contains(t, buf.String(), "verbose line")
}

func TestStructuredToStderrNever(t *testing.T) {
	var buf bytes.Buffer
	withStderr(t, &buf)

	cfg := DefaultConfig()
	cfg.Format.StructuredToStderr = "never"
	Setup(cfg)

	NewLogger("quiet").Error("nobody hears this")
	assert.Empty(t, buf.String())
}

func TestFileSink(t *testing.T) {
	var buf bytes.Buffer
	withStderr(t, &buf)

	path := filepath.Join(t.TempDir(), "logs", "file-preview.log")
	cfg := DefaultConfig()
	cfg.Format.StructuredToStderr = "never"
	cfg.File = FileSinkConfig{Enabled: true, Path: path, MaxSizeMB: 1, MaxBackups: 1}
	Setup(cfg)

	NewLogger("sink").Info("to the file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to the file")
	assert.Empty(t, buf.String())
}

func TestJSONPreset(t *testing.T) {
	var buf bytes.Buffer
	withStderr(t, &buf)

	cfg := DefaultConfig()
	cfg.Format.Preset = "json"
	Setup(cfg)

	NewLogger("json").WithField("path", "/tmp/a.png").Info("new file")
	out := buf.String()
	assert.Contains(t, out, `"msg":"new file"`)
	assert.Contains(t, out, `"path":"/tmp/a.png"`)
	assert.Contains(t, out, `"component":"json"`)
}

func TestTextFormatter(t *testing.T) {
	fixed := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)

	tests := []struct {
		name    string
		config  FormatConfig
		level   logrus.Level
		data    logrus.Fields
		want    []string
		notWant []string
	}{
		{
			name:   "default format",
			config: FormatConfig{},
			level:  logrus.InfoLevel,
			data:   logrus.Fields{"component": "daemon", "path": "/x"},
			want:   []string{"2024-03-09 14:05:06", "[INFO]", "[daemon]", "message", "path=/x"},
		},
		{
			name:    "warning is shortened",
			config:  FormatConfig{DisableTimestamp: true},
			level:   logrus.WarnLevel,
			data:    logrus.Fields{"component": "config"},
			want:    []string{"[WARN]", "[config]"},
			notWant: []string{"2024-03-09", "WARNING"},
		},
		{
			name:    "component disabled",
			config:  FormatConfig{DisableComponent: true},
			level:   logrus.ErrorLevel,
			data:    logrus.Fields{"component": "daemon"},
			want:    []string{"[ERROR]"},
			notWant: []string{"[daemon]", "component="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &logrus.Entry{
				Logger:  logrus.New(),
				Data:    tt.data,
				Time:    fixed,
				Level:   tt.level,
				Message: "message",
			}
			f := &TextFormatter{Config: tt.config}
			out, err := f.Format(entry)
			require.NoError(t, err)

			s := string(out)
			assert.True(t, strings.HasSuffix(s, "\n"))
			for _, w := range tt.want {
				assert.Contains(t, s, w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, s, nw)
			}
		})
	}
}

func TestFieldsAreSorted(t *testing.T) {
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Data:    logrus.Fields{"b": 2, "a": 1, "c": 3},
		Level:   logrus.InfoLevel,
		Message: "m",
	}
	out, err := (&TextFormatter{Config: FormatConfig{DisableTimestamp: true}}).Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), "m a=1 b=2 c=3")
}

func TestCallerIsShownWhenReported(t *testing.T) {
	l := logrus.New()
	l.SetReportCaller(true)
	entry := &logrus.Entry{
		Logger:  l,
		Data:    logrus.Fields{},
		Level:   logrus.InfoLevel,
		Message: "m",
		Caller:  &runtime.Frame{File: "/src/engine/engine.go", Line: 42, Function: "github.com/grovetools/file-preview/internal/daemon/engine.(*Engine).handle"},
	}
	out, err := (&TextFormatter{Config: FormatConfig{DisableTimestamp: true}}).Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), "[engine.go:42 engine.(*Engine).handle]")
}

func TestFieldValuesAreQuotedWhenNeeded(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{in: "/watch/img.png", want: "/watch/img.png"},
		{in: 2048, want: "2048"},
		{in: "/watch/a b.png", want: `"/watch/a b.png"`},
		{in: "", want: `""`},
		{in: "k=v", want: `"k=v"`},
		{in: "caf\xe9.png", want: `"caf\xe9.png"`},
		{in: "line\nbreak", want: `"line\nbreak"`},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, fieldValue(tt.in))
		})
	}
}

func TestPrettyLogger(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrettyLogger().WithWriter(&buf)

	p.Field("dismiss", "10s")
	p.Path("state", "/run/user/1000/file-preview-latest.json")
	p.Success("stopped")

	out := buf.String()
	assert.Contains(t, out, "dismiss")
	assert.Contains(t, out, "10s")
	assert.Contains(t, out, "/run/user/1000/file-preview-latest.json")
	assert.Contains(t, out, "stopped")
}

func TestPrettyLoggerQuotesUndisplayablePaths(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrettyLogger().WithWriter(&buf)

	p.Path("file", "/watch/caf\xe9.png")
	p.Warn("not running")
	p.Info("defaults")

	out := buf.String()
	assert.Contains(t, out, `"/watch/caf\xe9.png"`)
	assert.Contains(t, out, "not running")
	assert.Contains(t, out, "defaults")
}
