package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grovetools/file-preview/errors"
	"github.com/grovetools/file-preview/pkg/paths"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// LoadDefault loads the first config file found in the config directory, or
// the built-in defaults when there is none.
func LoadDefault(logger *logrus.Entry) *Config {
	path, err := FindConfigFile()
	if err != nil {
		logger.WithError(err).Debug("No config file, using defaults")
		return Default()
	}
	return Load(path, logger)
}

// Load reads the config file at path. It never fails: a missing file yields
// the defaults, a malformed file yields the defaults plus a warning, and a
// single bad key falls back to its own default.
func Load(path string, logger *logrus.Entry) *Config {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.WithField("path", path).Debug("Config file not found, using defaults")
		} else {
			logger.WithError(err).WithField("path", path).Warn("Failed to read config file, using defaults")
		}
		return Default()
	}

	cfg, err := LoadFromBytes(data, formatFor(path), logger)
	if err != nil {
		logger.WithError(errors.ConfigInvalid(path, err)).Warn("Malformed config file, using defaults")
		return Default()
	}
	cfg.Source = path

	logger.WithField("path", path).Debug("Loaded configuration")
	return cfg
}

// LoadFromBytes parses a config document ("toml" or "yaml") and applies it
// on top of the defaults key by key.
func LoadFromBytes(data []byte, format string, logger *logrus.Entry) (*Config, error) {
	raw, err := parseDocument(data, format)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	for _, k := range keys {
		value, ok := raw[k.name]
		if !ok {
			continue
		}
		if err := k.apply(cfg, value); err != nil {
			logger.WithError(err).WithField("key", k.name).Warn("Invalid config value, using default")
		}
	}

	var unknown []string
	for name := range raw {
		if !knownKey(name) {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		logger.WithField("key", name).Warn("Unknown config key ignored")
	}

	return cfg, nil
}

// ReadDocument parses the config file at path into a generic document
// without applying defaults or validation.
func ReadDocument(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, err
	}
	raw, err := parseDocument(data, formatFor(path))
	if err != nil {
		return nil, errors.ConfigInvalid(path, err)
	}
	return raw, nil
}

func parseDocument(data []byte, format string) (map[string]interface{}, error) {
	raw := make(map[string]interface{})
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// FindConfigFile returns the first existing config candidate.
func FindConfigFile() (string, error) {
	candidates := paths.ConfigCandidates()
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	if len(candidates) == 0 {
		return "", errors.ConfigNotFound("<no config directory>")
	}
	return "", errors.ConfigNotFound(candidates[0])
}

func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return "yaml"
	default:
		return "toml"
	}
}

func expandAll(dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, paths.Expand(d))
	}
	return out
}
