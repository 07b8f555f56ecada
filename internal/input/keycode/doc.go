// Package keycode encodes logical key presses as the byte sequences a
// VT100/xterm-family terminal expects on its input stream.
//
// Encode and Transform are pure functions of their arguments and are safe
// for concurrent use. A false result from Encode means "no mapping": the
// caller should fall back to ordinary text input for the key.
//
// The directional keys (arrows, Enter, Delete, Backspace, volume and Back)
// double as gesture tokens. Encode returns the gesture root-state meaning
// for them; decoding multi-token paths needs the stateful decoder in the
// gesture package.
package keycode
