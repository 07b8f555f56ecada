// Package translator turns key events from one input stream into the
// bytes written to the terminal.
//
// A Translator owns the per-stream state the pure encoder cannot hold:
// the terminal modes, the gesture decoder and an optional remapper. It is
// not safe for concurrent use; give each stream its own.
package translator

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/termkeys/internal/input/gesture"
	"github.com/dshills/termkeys/internal/input/key"
	"github.com/dshills/termkeys/internal/input/keycode"
	"github.com/dshills/termkeys/internal/input/termcap"
	"github.com/dshills/termkeys/internal/logging"
)

// Remapper can override the encoding of a key event before the built-in
// rules run. ok == false defers to the built-in rules. An error is
// logged and also defers.
type Remapper interface {
	Remap(ev key.Event) (out string, ok bool, err error)
}

// RemapperFunc adapts a function to Remapper.
type RemapperFunc func(ev key.Event) (string, bool, error)

// Remap calls f.
func (f RemapperFunc) Remap(ev key.Event) (string, bool, error) {
	return f(ev)
}

// Translator encodes key events for a single stream.
type Translator struct {
	id       uuid.UUID
	modes    keycode.Modes
	gestures bool
	debounce time.Duration
	decoder  *gesture.Decoder
	remapper Remapper
	logger   *logging.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithModes sets the initial terminal modes.
func WithModes(m keycode.Modes) Option {
	return func(t *Translator) {
		t.modes = m
	}
}

// WithGestures turns the gesture front end on or off. It is on by default.
func WithGestures(enabled bool) Option {
	return func(t *Translator) {
		t.gestures = enabled
	}
}

// WithDebounce sets the gesture debounce window.
func WithDebounce(d time.Duration) Option {
	return func(t *Translator) {
		t.debounce = d
	}
}

// WithRemapper installs a remapper consulted before the built-in rules.
func WithRemapper(r Remapper) Option {
	return func(t *Translator) {
		t.remapper = r
	}
}

// WithLogger sets the logger. Events are logged at debug level.
func WithLogger(l *logging.Logger) Option {
	return func(t *Translator) {
		t.logger = l
	}
}

// New creates a Translator with a fresh stream ID.
func New(opts ...Option) *Translator {
	t := &Translator{
		id:       uuid.New(),
		gestures: true,
		debounce: gesture.DefaultDebounce,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = logging.Discard()
	}
	t.logger = t.logger.WithComponent("translator").WithField("stream", t.id.String())
	t.decoder = gesture.NewDecoder(gesture.WithDebounce(t.debounce))
	return t
}

// ID returns the stream ID.
func (t *Translator) ID() uuid.UUID {
	return t.id
}

// Modes returns the current terminal modes.
func (t *Translator) Modes() keycode.Modes {
	return t.modes
}

// SetModes replaces the terminal modes.
func (t *Translator) SetModes(m keycode.Modes) {
	t.modes = m
}

// Gestures reports whether the gesture front end is on.
func (t *Translator) Gestures() bool {
	return t.gestures
}

// SetGestures turns the gesture front end on or off. Turning it off
// drops any pending gesture prefix.
func (t *Translator) SetGestures(enabled bool) {
	if !enabled {
		t.decoder.Reset()
	}
	t.gestures = enabled
}

// Debounce returns the gesture debounce window.
func (t *Translator) Debounce() time.Duration {
	return t.debounce
}

// SetDebounce replaces the gesture decoder with one using d.
// Any pending gesture prefix is lost.
func (t *Translator) SetDebounce(d time.Duration) {
	t.debounce = d
	t.decoder = gesture.NewDecoder(gesture.WithDebounce(d))
}

// SetRemapper replaces the remapper. nil removes it.
func (t *Translator) SetRemapper(r Remapper) {
	t.remapper = r
}

// GestureState returns the pending gesture prefix.
func (t *Translator) GestureState() gesture.State {
	return t.decoder.State()
}

// ResetGesture drops any pending gesture prefix.
func (t *Translator) ResetGesture() {
	t.decoder.Reset()
}

// Translate returns the bytes for ev observed at nowMillis, or false when
// nothing should be written (plain text, a pending gesture prefix, or a
// debounced token).
func (t *Translator) Translate(ev key.Event, nowMillis int64) (string, bool) {
	if t.remapper != nil {
		out, ok, err := t.remapper.Remap(ev)
		if err != nil {
			t.logger.Warn("remap %s: %v", ev, err)
		} else if ok {
			t.logger.Debug("remap %s -> %q", ev, out)
			return out, true
		}
	}

	if tok, ok := gesture.TokenForKey(ev.Key); ok {
		if !t.gestures {
			return keycode.EncodeDirect(ev.Key, ev.Modifiers, t.modes)
		}
		before := t.decoder.State()
		out, ok := t.decoder.Decode(tok, nowMillis)
		t.logger.Debug("gesture %s: %s -> %s emit=%q ok=%v", tok, before, t.decoder.State(), out, ok)
		return out, ok
	}

	return keycode.Encode(ev.Key, ev.Modifiers, t.modes)
}

// Termcap translates a termcap capability name. Unknown names return false.
func (t *Translator) Termcap(name string, nowMillis int64) (string, bool) {
	entry, ok := termcap.Lookup(name)
	if !ok {
		t.logger.Debug("unknown capability %q", name)
		return "", false
	}
	return t.Translate(entry.Event(), nowMillis)
}
