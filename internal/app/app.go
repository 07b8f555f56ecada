// Package app wires configuration, the key translator and the optional
// remap script into a termkeys session. A session is either one-shot
// (Encode, Termcap), batch (RunBatch) or interactive (Run on a tcell
// screen).
package app

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termkeys/internal/config"
	"github.com/dshills/termkeys/internal/config/notify"
	"github.com/dshills/termkeys/internal/input/key"
	"github.com/dshills/termkeys/internal/input/termcap"
	"github.com/dshills/termkeys/internal/input/translator"
	"github.com/dshills/termkeys/internal/logging"
	"github.com/dshills/termkeys/internal/plugin/lua"
)

// maxHistory bounds the translations kept for display.
const maxHistory = 256

// Options configures the application. Zero values leave the loaded
// configuration untouched.
type Options struct {
	// ConfigPath is the path to a TOML or YAML configuration file.
	ConfigPath string

	// LogLevel overrides logging.level.
	LogLevel string

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// CursorApp and KeypadApp override the terminal modes when set.
	CursorApp *bool
	KeypadApp *bool

	// NoGestures turns the gesture front end off.
	NoGestures bool

	// Script overrides plugin.script.
	Script string

	// Watch reloads ConfigPath when it changes on disk.
	Watch bool
}

// overrides returns the command-line settings as config paths.
func (o Options) overrides() map[string]any {
	m := make(map[string]any)
	if o.LogLevel != "" {
		m["logging.level"] = o.LogLevel
	}
	if o.CursorApp != nil {
		m["terminal.cursor_keys_application"] = *o.CursorApp
	}
	if o.KeypadApp != nil {
		m["terminal.keypad_application"] = *o.KeypadApp
	}
	if o.NoGestures {
		m["gesture.enabled"] = false
	}
	if o.Script != "" {
		m["plugin.script"] = o.Script
	}
	return m
}

// Entry is one translated input.
type Entry struct {
	Input  string
	Output string
	OK     bool
}

// App coordinates a single translation stream.
type App struct {
	mu sync.Mutex

	opts       Options
	cfg        *config.Config
	logger     *logging.Logger
	translator *translator.Translator
	remapper   *lua.Remapper
	watcher    *config.Watcher
	notifier   *notify.Notifier

	screen  tcell.Screen
	history []Entry

	running  atomic.Bool
	shutdown sync.Once
	now      func() time.Time
}

// New loads configuration and builds the translator.
func New(opts Options) (*App, error) {
	a := &App{
		opts: opts,
		now:  time.Now,
	}
	if err := a.bootstrap(); err != nil {
		a.Shutdown()
		return nil, err
	}
	return a, nil
}

// bootstrap initializes components in dependency order.
func (a *App) bootstrap() error {
	cfg, err := a.loadConfig(a.opts.ConfigPath)
	if err != nil {
		return NewComponentError("config", "load", err)
	}
	a.cfg = cfg

	a.logger = logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Output: a.opts.LogOutput,
		Prefix: "termkeys",
	})

	for _, p := range cfg.Ignored {
		a.logger.Debug("ignoring environment setting %s", p)
	}

	a.translator = translator.New(
		translator.WithModes(cfg.Terminal.Modes()),
		translator.WithGestures(cfg.Gesture.Enabled),
		translator.WithDebounce(cfg.Gesture.Debounce()),
		translator.WithLogger(a.logger),
	)

	a.notifier = notify.New()
	a.subscribe()

	if cfg.Plugin.Script != "" {
		r, err := a.loadScript(cfg.Plugin.Script)
		if err != nil {
			return NewComponentError("script", "load", err)
		}
		a.setRemapper(r)
	}

	if a.opts.Watch && a.opts.ConfigPath != "" {
		w, err := config.Watch(a.opts.ConfigPath, a.reload)
		if err != nil {
			return NewComponentError("config", "watch", err)
		}
		a.watcher = w
	}

	a.logger.Debug("stream %s ready: cursor_app=%v keypad_app=%v gestures=%v",
		a.translator.ID(), cfg.Terminal.CursorKeysApplication, cfg.Terminal.KeypadApplication, cfg.Gesture.Enabled)
	return nil
}

// loadConfig loads path and layers the command-line overrides on top.
func (a *App) loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(a.opts.overrides()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *App) loadScript(path string) (*lua.Remapper, error) {
	module := lua.NewModule(
		lua.WithModesFunc(a.translator.Modes),
		lua.WithModuleLogger(a.logger),
	)
	return lua.LoadRemapper(path, module)
}

// setRemapper installs r, which may be nil. Callers hold a.mu or own a.
func (a *App) setRemapper(r *lua.Remapper) {
	a.remapper = r
	if r == nil {
		// A nil *Remapper in the interface would still be called.
		a.translator.SetRemapper(nil)
		return
	}
	a.translator.SetRemapper(r)
}

// subscribe binds each setting to the component that consumes it. The
// observers run from reload with a.mu held.
func (a *App) subscribe() {
	n := a.notifier
	n.Subscribe(func(c notify.Change) {
		a.logger.Info("config %s (from %s)", c, c.Source)
	})
	n.SubscribePath("terminal.cursor_keys_application", func(c notify.Change) {
		m := a.translator.Modes()
		m.CursorKeysApplication, _ = c.NewValue.(bool)
		a.translator.SetModes(m)
	})
	n.SubscribePath("terminal.keypad_application", func(c notify.Change) {
		m := a.translator.Modes()
		m.KeypadApplication, _ = c.NewValue.(bool)
		a.translator.SetModes(m)
	})
	n.SubscribePath("gesture.enabled", func(c notify.Change) {
		enabled, _ := c.NewValue.(bool)
		a.translator.SetGestures(enabled)
	})
	n.SubscribePath("gesture.debounce_ms", func(c notify.Change) {
		ms, _ := c.NewValue.(int)
		a.translator.SetDebounce(time.Duration(ms) * time.Millisecond)
	})
	n.SubscribePath("logging.level", func(c notify.Change) {
		level, _ := c.NewValue.(string)
		a.logger.SetLevel(logging.ParseLevel(level))
	})
	n.SubscribePath("plugin.script", a.swapScript)
}

// swapScript replaces the remap script. A script that fails to load
// leaves the previous one running.
func (a *App) swapScript(c notify.Change) {
	path, _ := c.NewValue.(string)

	var next *lua.Remapper
	if path != "" {
		r, err := a.loadScript(path)
		if err != nil {
			a.logger.Warn("script reload failed: %v", err)
			a.cfg.Plugin.Script, _ = c.OldValue.(string)
			return
		}
		next = r
	}

	if a.remapper != nil {
		a.remapper.Close()
	}
	a.setRemapper(next)
}

// reload applies a configuration read by the watcher. On error the
// running configuration is kept.
func (a *App) reload(cfg *config.Config, err error) {
	if err != nil {
		a.logger.Warn("config reload failed: %v", err)
		return
	}
	if err := cfg.Apply(a.opts.overrides()); err != nil {
		a.logger.Warn("config reload failed: %v", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		a.logger.Warn("config reload failed: %v", err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	prev := a.cfg
	a.cfg = cfg
	changes := a.notifier.Publish(prev.Settings(), cfg.Settings(), cfg.Source)
	a.logger.Debug("config reloaded: %d changes", len(changes))
}

// Config returns a copy of the running configuration.
func (a *App) Config() *config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg.Clone()
}

// Logger returns the application logger.
func (a *App) Logger() *logging.Logger {
	return a.logger
}

// Translator returns the underlying translator. Callers must not use it
// concurrently with the App.
func (a *App) Translator() *translator.Translator {
	return a.translator
}

// Translate encodes ev at the current time and records the result.
func (a *App) Translate(ev key.Event) (string, bool) {
	return a.translateAt(ev, a.now().UnixMilli())
}

func (a *App) translateAt(ev key.Event, nowMillis int64) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	out, ok := a.translator.Translate(ev, nowMillis)
	a.record(Entry{Input: ev.String(), Output: out, OK: ok})
	return out, ok
}

// Encode parses spec and translates it at the current time.
func (a *App) Encode(spec string) (string, error) {
	return a.EncodeAt(spec, a.now().UnixMilli())
}

// EncodeAt parses spec and translates it as if observed at nowMillis.
func (a *App) EncodeAt(spec string, nowMillis int64) (string, error) {
	ev, err := key.Parse(spec)
	if err != nil {
		return "", err
	}
	out, ok := a.translateAt(ev, nowMillis)
	if !ok {
		return "", fmt.Errorf("%w for %s", ErrNoMapping, ev)
	}
	return out, nil
}

// Termcap translates a termcap capability name at the current time.
func (a *App) Termcap(name string) (string, error) {
	return a.TermcapAt(name, a.now().UnixMilli())
}

// TermcapAt translates a termcap capability name as if observed at
// nowMillis.
func (a *App) TermcapAt(name string, nowMillis int64) (string, error) {
	entry, ok := termcap.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCapability, name)
	}
	out, ok := a.translateAt(entry.Event(), nowMillis)
	if !ok {
		return "", fmt.Errorf("%w for %s (%s)", ErrNoMapping, name, entry.Event())
	}
	return out, nil
}

// Step returns the smallest clock advance that clears the gesture
// debounce window. Callers replaying a recorded sequence space each
// input by Step.
func (a *App) Step() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.translator.Debounce() + time.Millisecond
}

// Clock returns a virtual clock starting at the current time. Each call
// of the returned function advances it by Step.
func (a *App) Clock() func() int64 {
	step := a.Step().Milliseconds()
	now := a.now().UnixMilli()
	return func() int64 {
		now += step
		return now
	}
}

// record appends e to the history. Callers hold a.mu.
func (a *App) record(e Entry) {
	a.history = append(a.history, e)
	if len(a.history) > maxHistory {
		a.history = a.history[len(a.history)-maxHistory:]
	}
}

// History returns the recorded translations, oldest first.
func (a *App) History() []Entry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Entry, len(a.history))
	copy(out, a.history)
	return out
}

// IsRunning reports whether an interactive session is active.
func (a *App) IsRunning() bool {
	return a.running.Load()
}

// Shutdown stops the interactive session and releases the watcher and
// the script state. It is safe to call more than once.
func (a *App) Shutdown() error {
	var errs ErrorList
	a.shutdown.Do(func() {
		if a.screen != nil && a.running.Load() {
			a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
		if a.watcher != nil {
			errs.Add(a.watcher.Close())
		}

		a.mu.Lock()
		if a.remapper != nil {
			errs.Add(a.remapper.Close())
			a.setRemapper(nil)
		}
		a.mu.Unlock()

		if a.logger != nil {
			a.logger.Debug("shutdown complete")
		}
	})
	return errs.AsError()
}
