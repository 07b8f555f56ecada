package keycode

import "github.com/dshills/termkeys/internal/input/key"

// arrowFinals are the final bytes of the cursor key sequences.
var arrowFinals = map[key.Key]byte{
	key.KeyUp:    'A',
	key.KeyDown:  'B',
	key.KeyRight: 'C',
	key.KeyLeft:  'D',
}

// EncodeDirect encodes the gesture keys the way a plain xterm would, for
// streams where the gesture front end is turned off.
//
// Arrows follow DECCKM and take modifier parameters like Home and End.
// Enter is CR, Backspace is DEL, Delete is CSI 3 ~. The volume keys and
// Back have no terminal meaning and return false. Any other key is
// passed to Encode.
func EncodeDirect(k key.Key, mods key.Modifier, modes Modes) (string, bool) {
	if final, ok := arrowFinals[k]; ok {
		return homeEnd(mods, modes, final), true
	}

	switch k {
	case key.KeyEnter:
		return "\r", true
	case key.KeyBackspace:
		return "\x7f", true
	case key.KeyDelete:
		return Transform(csi+"3", mods, '~'), true
	case key.KeyVolumeUp, key.KeyVolumeDown, key.KeyBack:
		return "", false
	}

	return Encode(k, mods, modes)
}
