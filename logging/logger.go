package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// componentKey is the field every component logger carries.
const componentKey = "component"

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
	settings  = DefaultConfig()
	fileSink  io.Writer

	// stderr is swapped in tests.
	stderr io.Writer = os.Stderr
)

// Setup installs the logging settings used by every logger created afterwards.
// Loggers created before Setup are discarded from the cache.
func Setup(cfg Config) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if c, ok := fileSink.(io.Closer); ok {
		_ = c.Close()
	}
	fileSink = nil

	settings = cfg
	if cfg.File.Enabled && cfg.File.Path != "" {
		path := expandPath(cfg.File.Path)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
			fileSink = &lumberjack.Logger{
				Filename:   path,
				MaxSize:    cfg.File.MaxSizeMB,
				MaxBackups: cfg.File.MaxBackups,
				LocalTime:  true,
			}
		}
	}
	loggers = make(map[string]*logrus.Entry)
}

// NewLogger creates and returns a pre-configured logger for a specific component.
// Loggers are cached per component.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()
	logCfg := settings

	levelStr := "info"
	if env := os.Getenv("FILE_PREVIEW_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if logCfg.Level != "" {
		levelStr = logCfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if os.Getenv("FILE_PREVIEW_LOG_CALLER") == "true" || logCfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	switch logCfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		logger.SetFormatter(&TextFormatter{Config: logCfg.Format})
	}

	var writers []io.Writer
	if fileSink != nil {
		writers = append(writers, fileSink)
	}
	if shouldLogToStderr(logCfg.Format.StructuredToStderr, logger.GetLevel()) {
		writers = append(writers, stderr)
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	entry := logger.WithField(componentKey, component)
	loggers[component] = entry
	return entry
}

// shouldLogToStderr resolves the structured_to_stderr mode.
// "auto" logs to stderr in debug mode or when stderr is not a terminal.
func shouldLogToStderr(mode string, level logrus.Level) bool {
	switch strings.ToLower(mode) {
	case "never":
		return false
	case "auto":
		isDebug := os.Getenv("FILE_PREVIEW_DEBUG") == "1" || level >= logrus.DebugLevel
		f, ok := stderr.(*os.File)
		if !ok {
			return true
		}
		isInteractive := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		return isDebug || !isInteractive
	default:
		return true
	}
}

// expandPath expands tilde in file paths
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
