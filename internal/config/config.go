package config

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/dshills/termkeys/internal/config/loader"
	"github.com/dshills/termkeys/internal/input/keycode"
	"github.com/dshills/termkeys/internal/logging"
)

// MaxDebounceMS bounds gesture.debounce_ms.
const MaxDebounceMS = 10000

// Config is the resolved termkeys configuration.
// Section values are plain data; copying a Config copies every setting.
type Config struct {
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
	Terminal TerminalConfig `toml:"terminal" yaml:"terminal"`
	Gesture  GestureConfig  `toml:"gesture" yaml:"gesture"`
	Plugin   PluginConfig   `toml:"plugin" yaml:"plugin"`

	// Source is the file the configuration was read from, if any.
	Source string `toml:"-" yaml:"-"`

	// Ignored lists environment-derived paths that name no setting.
	Ignored []string `toml:"-" yaml:"-"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum level written ("debug", "info", "warn", "error").
	Level string `toml:"level" yaml:"level"`
}

// TerminalConfig holds the terminal modes the encoder honours.
type TerminalConfig struct {
	// CursorKeysApplication is DECCKM: unmodified arrows use SS3.
	CursorKeysApplication bool `toml:"cursor_keys_application" yaml:"cursor_keys_application"`

	// KeypadApplication is DECKPAM: keypad keys send SS3 sequences.
	KeypadApplication bool `toml:"keypad_application" yaml:"keypad_application"`
}

// Modes returns the encoder modes for these settings.
func (t TerminalConfig) Modes() keycode.Modes {
	return keycode.Modes{
		CursorKeysApplication: t.CursorKeysApplication,
		KeypadApplication:     t.KeypadApplication,
	}
}

// GestureConfig holds gesture front end settings.
type GestureConfig struct {
	// Enabled routes directional keys through the gesture decoder.
	Enabled bool `toml:"enabled" yaml:"enabled"`

	// DebounceMS is the minimum spacing of accepted gesture tokens.
	DebounceMS int `toml:"debounce_ms" yaml:"debounce_ms"`
}

// Debounce returns DebounceMS as a duration.
func (g GestureConfig) Debounce() time.Duration {
	return time.Duration(g.DebounceMS) * time.Millisecond
}

// PluginConfig holds Lua plugin settings.
type PluginConfig struct {
	// Script is the Lua remap script. Empty disables remapping.
	Script string `toml:"script" yaml:"script"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging:  LoggingConfig{Level: "info"},
		Terminal: TerminalConfig{},
		Gesture:  GestureConfig{Enabled: true, DebounceMS: 100},
		Plugin:   PluginConfig{},
	}
}

// Load resolves defaults, the file at path and TERMKEYS_* variables,
// then validates the result. An empty path or a missing file leaves the
// defaults in place.
func Load(path string) (*Config, error) {
	return LoadFrom(loader.DefaultFS(), path, loader.NewEnvLoader(loader.EnvPrefix))
}

// LoadFrom is Load with explicit sources. env may be nil.
func LoadFrom(fsys loader.FileSystem, path string, env loader.Loader) (*Config, error) {
	merged := make(map[string]any)

	if path != "" {
		fl, err := loader.ForPath(fsys, path)
		if err != nil {
			return nil, err
		}
		data, err := fl.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, data)
	}

	var ignored []string
	if env != nil {
		data, err := env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		ignored = pruneUnknown(data, "")
		merged = loader.DeepMerge(merged, data)
	}

	cfg := Default()
	cfg.Source = path
	cfg.Ignored = ignored
	if err := cfg.Apply(loader.Flatten(merged)); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// pruneUnknown removes every leaf of data whose path names no setting,
// along with sections left empty, and returns the removed paths sorted.
// Any TERMKEYS_ variable maps to a path, so unrelated variables must not
// fail the load.
func pruneUnknown(data map[string]any, prefix string) []string {
	var dropped []string
	for k, v := range data {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if m, ok := v.(map[string]any); ok {
			dropped = append(dropped, pruneUnknown(m, path)...)
			if len(m) == 0 {
				delete(data, k)
			}
			continue
		}
		if _, ok := settings[path]; !ok {
			dropped = append(dropped, path)
			delete(data, k)
		}
	}
	sort.Strings(dropped)
	return dropped
}

// setting binds a dotted path to a Config field.
type setting struct {
	get func(c *Config) any
	set func(c *Config, path string, v any) error
}

var settings = map[string]setting{
	"logging.level": {
		get: func(c *Config) any { return c.Logging.Level },
		set: func(c *Config, path string, v any) error {
			s, err := asString(path, v)
			if err != nil {
				return err
			}
			c.Logging.Level = s
			return nil
		},
	},
	"terminal.cursor_keys_application": {
		get: func(c *Config) any { return c.Terminal.CursorKeysApplication },
		set: func(c *Config, path string, v any) error {
			b, err := asBool(path, v)
			if err != nil {
				return err
			}
			c.Terminal.CursorKeysApplication = b
			return nil
		},
	},
	"terminal.keypad_application": {
		get: func(c *Config) any { return c.Terminal.KeypadApplication },
		set: func(c *Config, path string, v any) error {
			b, err := asBool(path, v)
			if err != nil {
				return err
			}
			c.Terminal.KeypadApplication = b
			return nil
		},
	},
	"gesture.enabled": {
		get: func(c *Config) any { return c.Gesture.Enabled },
		set: func(c *Config, path string, v any) error {
			b, err := asBool(path, v)
			if err != nil {
				return err
			}
			c.Gesture.Enabled = b
			return nil
		},
	},
	"gesture.debounce_ms": {
		get: func(c *Config) any { return c.Gesture.DebounceMS },
		set: func(c *Config, path string, v any) error {
			n, err := asInt(path, v)
			if err != nil {
				return err
			}
			c.Gesture.DebounceMS = n
			return nil
		},
	},
	"plugin.script": {
		get: func(c *Config) any { return c.Plugin.Script },
		set: func(c *Config, path string, v any) error {
			s, err := asString(path, v)
			if err != nil {
				return err
			}
			c.Plugin.Script = s
			return nil
		},
	},
}

// Paths returns every known setting path in sorted order.
func Paths() []string {
	paths := make([]string, 0, len(settings))
	for p := range settings {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Apply sets each dotted path in values. Paths are applied in sorted
// order and the first failure stops the walk; on error c may be
// partially updated.
func (c *Config) Apply(values map[string]any) error {
	paths := make([]string, 0, len(values))
	for p := range values {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		s, ok := settings[p]
		if !ok {
			return &ValidationError{
				Path:    p,
				Message: "unknown setting",
				Value:   values[p],
				Code:    ErrCodeUnknownSetting,
			}
		}
		if err := s.set(c, p, values[p]); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the value at a dotted path.
func (c *Config) Get(path string) (any, bool) {
	s, ok := settings[path]
	if !ok {
		return nil, false
	}
	return s.get(c), true
}

// Settings returns every setting keyed by dotted path.
func (c *Config) Settings() map[string]any {
	out := make(map[string]any, len(settings))
	for p, s := range settings {
		out[p] = s.get(c)
	}
	return out
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Ignored = slices.Clone(c.Ignored)
	return &cp
}

// Validate checks every setting and reports all failures together.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, &ValidationError{
			Path:    "logging.level",
			Message: "must be one of debug, info, warn, error",
			Value:   c.Logging.Level,
			Code:    ErrCodeInvalidEnum,
		})
	}
	if c.Gesture.DebounceMS < 0 || c.Gesture.DebounceMS > MaxDebounceMS {
		errs = append(errs, &ValidationError{
			Path:    "gesture.debounce_ms",
			Message: fmt.Sprintf("must be between 0 and %d", MaxDebounceMS),
			Value:   c.Gesture.DebounceMS,
			Code:    ErrCodeOutOfRange,
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// asString accepts scalars as well as strings: environment values arrive
// typed, so TERMKEYS_PLUGIN_SCRIPT=42 is the script "42".
func asString(path string, v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case int:
		return strconv.Itoa(s), nil
	case uint64:
		return strconv.FormatUint(s, 10), nil
	case bool:
		return strconv.FormatBool(s), nil
	}
	return "", &TypeError{Path: path, Expected: "string", Actual: fmt.Sprintf("%T", v)}
}

func asBool(path string, v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case int64:
		if b == 0 || b == 1 {
			return b == 1, nil
		}
	case int:
		if b == 0 || b == 1 {
			return b == 1, nil
		}
	}
	return false, &TypeError{Path: path, Expected: "bool", Actual: fmt.Sprintf("%T", v)}
}

func asInt(path string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	}
	return 0, &TypeError{Path: path, Expected: "int", Actual: fmt.Sprintf("%T", v)}
}
