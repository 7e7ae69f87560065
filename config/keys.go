package config

import (
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/grovetools/file-preview/logging"
	"github.com/mitchellh/mapstructure"
)

var validate = validator.New()

// MaxDismissSeconds is the largest dismiss window a time.Duration can hold.
const MaxDismissSeconds = float64(math.MaxInt64 / int64(time.Second))

// key decodes one top-level config key onto a Config. A failing key leaves
// the Config untouched.
type key struct {
	name  string
	apply func(cfg *Config, raw interface{}) error
}

var keys = []key{
	{name: "watch_dirs", apply: func(cfg *Config, raw interface{}) error {
		var dirs []string
		if err := decodeChecked(raw, &dirs, "dive,required"); err != nil {
			return err
		}
		cfg.WatchDirs = expandAll(dirs)
		return nil
	}},
	{name: "signal_number", apply: func(cfg *Config, raw interface{}) error {
		var n int
		if err := decodeChecked(raw, &n, "min=1,max=30"); err != nil {
			return err
		}
		cfg.SignalNumber = n
		return nil
	}},
	{name: "dismiss_seconds", apply: func(cfg *Config, raw interface{}) error {
		var secs float64
		if err := decodeChecked(raw, &secs, fmt.Sprintf("gt=0,lte=%d", int64(MaxDismissSeconds))); err != nil {
			return err
		}
		cfg.Dismiss = time.Duration(secs * float64(time.Second))
		return nil
	}},
	{name: "ignore_suffixes", apply: func(cfg *Config, raw interface{}) error {
		var suffixes []string
		if err := decodeChecked(raw, &suffixes, "dive,required"); err != nil {
			return err
		}
		cfg.IgnoreSuffixes = suffixes
		return nil
	}},
	{name: "backend", apply: func(cfg *Config, raw interface{}) error {
		var backend string
		if err := decodeChecked(raw, &backend, "oneof=auto inotify fsnotify"); err != nil {
			return err
		}
		cfg.Backend = backend
		return nil
	}},
	{name: "status_bar_process", apply: func(cfg *Config, raw interface{}) error {
		var name string
		if err := decodeChecked(raw, &name, "required"); err != nil {
			return err
		}
		cfg.StatusBarProcess = name
		return nil
	}},
	{name: "clipboard_command", apply: func(cfg *Config, raw interface{}) error {
		cmd := []string{}
		if err := decodeChecked(raw, &cmd, "dive,required"); err != nil {
			return err
		}
		cfg.ClipboardCommand = cmd
		return nil
	}},
	{name: "logging", apply: func(cfg *Config, raw interface{}) error {
		lc := logging.DefaultConfig()
		if err := decode(raw, &lc); err != nil {
			return err
		}
		if err := validate.Var(lc.Level, "omitempty,oneof=trace debug info warn warning error"); err != nil {
			return fmt.Errorf("logging.level: %w", err)
		}
		if err := validate.Var(lc.Format.Preset, "omitempty,oneof=default simple json"); err != nil {
			return fmt.Errorf("logging.format.preset: %w", err)
		}
		if err := validate.Var(lc.Format.StructuredToStderr, "omitempty,oneof=auto always never"); err != nil {
			return fmt.Errorf("logging.format.structured_to_stderr: %w", err)
		}
		cfg.Logging = lc
		return nil
	}},
}

func knownKey(name string) bool {
	for _, k := range keys {
		if k.name == name {
			return true
		}
	}
	return false
}

// decode converts a generic TOML/YAML value into target. Weak typing lets
// `dismiss_seconds = 10` and `dismiss_seconds = 2.5` both decode into a float
// and a bare string become a one-element list.
func decode(raw interface{}, target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}
	return decoder.Decode(raw)
}

func decodeChecked(raw interface{}, target interface{}, tag string) error {
	if err := decode(raw, target); err != nil {
		return err
	}
	return validate.Var(derefValue(target), tag)
}

func derefValue(target interface{}) interface{} {
	switch v := target.(type) {
	case *[]string:
		return *v
	case *int:
		return *v
	case *float64:
		return *v
	case *string:
		return *v
	default:
		return target
	}
}
