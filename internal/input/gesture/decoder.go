package gesture

import "time"

// DefaultDebounce is the minimum gap between two accepted tokens.
const DefaultDebounce = 100 * time.Millisecond

// Decoder walks the transition table one token at a time.
type Decoder struct {
	state    State
	last     int64 // milliseconds of the last accepted token
	primed   bool  // false until the first token is accepted
	debounce int64 // milliseconds
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithDebounce sets the debounce window. Zero or negative disables it.
func WithDebounce(d time.Duration) Option {
	return func(dec *Decoder) {
		dec.debounce = d.Milliseconds()
	}
}

// NewDecoder creates a decoder in the root state.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		state:    Root,
		debounce: DefaultDebounce.Milliseconds(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode consumes one token observed at nowMillis.
//
// It returns the emitted value and true when the token completes a path.
// It returns false when the token opened or extended a prefix, hit an
// empty slot (which resets to the root), arrived inside the debounce
// window, or is not a token at all. The last two leave the decoder
// untouched.
func (d *Decoder) Decode(t Token, nowMillis int64) (string, bool) {
	if !t.Valid() {
		return "", false
	}
	if d.primed && nowMillis-d.last < d.debounce {
		return "", false
	}
	d.last = nowMillis
	d.primed = true

	step, ok := table[d.state][t]
	if !ok {
		d.state = Root
		return "", false
	}
	if step.IsTransition() {
		d.state = step.Next
		return "", false
	}
	d.state = Root
	return step.Emit, true
}

// State returns the pending prefix.
func (d *Decoder) State() State {
	return d.state
}

// LastAccepted returns the time of the last accepted token and whether
// any token has been accepted yet.
func (d *Decoder) LastAccepted() (int64, bool) {
	return d.last, d.primed
}

// Debounce returns the debounce window.
func (d *Decoder) Debounce() time.Duration {
	return time.Duration(d.debounce) * time.Millisecond
}

// Reset drops any pending prefix and forgets the debounce timestamp.
func (d *Decoder) Reset() {
	d.state = Root
	d.last = 0
	d.primed = false
}
