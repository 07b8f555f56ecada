// Package gesture decodes a stream of directional tokens into characters
// and escape sequences.
//
// A constrained input surface (five bidirectional axes, or the arrow,
// enter, delete and volume keys of a phone) produces one of ten tokens per
// gesture. Short token paths of length one to three select the full
// printable set, the C0 control characters and the common xterm
// navigation and function-key sequences.
//
// The graph lives in an explicit (state, token) table; see Lookup and
// States. Every non-root state either emits and returns to the root or
// moves one level deeper. Slots nobody has assigned yet emit "?".
//
// A Decoder carries the pending prefix and the time of the last accepted
// token. The caller supplies the clock so decoding stays deterministic.
// Decoders are not safe for concurrent use; create one per input stream.
package gesture
