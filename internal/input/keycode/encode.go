package keycode

import (
	"github.com/dshills/termkeys/internal/input/gesture"
	"github.com/dshills/termkeys/internal/input/key"
)

// Prefixes of the sequences built here.
const (
	esc = "\x1b"
	csi = esc + "["
	ss3 = esc + "O"
)

// functionKeyCodes are the CSI parameters of F5-F12.
var functionKeyCodes = map[key.Key]string{
	key.KeyF5:  "15",
	key.KeyF6:  "17",
	key.KeyF7:  "18",
	key.KeyF8:  "19",
	key.KeyF9:  "20",
	key.KeyF10: "21",
	key.KeyF11: "23",
	key.KeyF12: "24",
}

// keypadKey is how a keypad key encodes in each keypad mode.
type keypadKey struct {
	numeric string // DECKPNM
	final   byte   // DECKPAM, after SS3
}

var keypadKeys = map[key.Key]keypadKey{
	key.KeyKPEnter:    {"\n", 'M'},
	key.KeyKPMultiply: {"*", 'j'},
	key.KeyKPAdd:      {"+", 'k'},
	key.KeyKPSubtract: {"-", 'm'},
	key.KeyKPDivide:   {"/", 'o'},
	key.KeyKP0:        {"0", 'p'},
	key.KeyKP1:        {"1", 'q'},
	key.KeyKP2:        {"2", 'r'},
	key.KeyKP3:        {"3", 's'},
	key.KeyKP4:        {"4", 't'},
	key.KeyKP5:        {"5", 'u'},
	key.KeyKP6:        {"6", 'v'},
	key.KeyKP7:        {"7", 'w'},
	key.KeyKP8:        {"8", 'x'},
	key.KeyKP9:        {"9", 'y'},
	key.KeyKPEquals:   {"=", 'X'},
}

// Encode returns the bytes to write to the terminal for a key press, or
// false when the key has no mapping and should be handled as text.
func Encode(k key.Key, mods key.Modifier, modes Modes) (string, bool) {
	if tok, ok := gesture.TokenForKey(k); ok {
		return gesture.RootOutput(tok)
	}

	switch k {
	case key.KeyCenter:
		return "\r", true

	case key.KeyHome:
		return homeEnd(mods, modes, 'H'), true
	case key.KeyEnd:
		return homeEnd(mods, modes, 'F'), true

	// xterm sends F1-F4 as SS3 unmodified and as CSI 1;m when modified.
	case key.KeyF1:
		return functionKey(mods, 'P'), true
	case key.KeyF2:
		return functionKey(mods, 'Q'), true
	case key.KeyF3:
		return functionKey(mods, 'R'), true
	case key.KeyF4:
		return functionKey(mods, 'S'), true
	case key.KeyF5, key.KeyF6, key.KeyF7, key.KeyF8,
		key.KeyF9, key.KeyF10, key.KeyF11, key.KeyF12:
		return Transform(csi+functionKeyCodes[k], mods, '~'), true

	case key.KeySysRq:
		return csi + "32~", true
	case key.KeyBreak:
		return csi + "34~", true

	case key.KeyEscape:
		return esc, true

	case key.KeyInsert:
		return Transform(csi+"2", mods, '~'), true

	case key.KeyPageUp:
		return csi + "5~", true
	case key.KeyPageDown:
		return csi + "6~", true

	case key.KeyNumLock:
		return ss3 + "P", true

	case key.KeySpace:
		// Unmodified space goes through text input so dead keys can
		// combine with it.
		if !mods.HasCtrl() {
			return "", false
		}
		return "\x00", true

	case key.KeyTab:
		if mods.HasShift() {
			return csi + "Z", true
		}
		return "\t", true

	case key.KeyKPComma:
		return ",", true
	case key.KeyKPDecimal:
		if modes.KeypadApplication {
			return ss3 + "n", true
		}
		return ".", true
	}

	if kp, ok := keypadKeys[k]; ok {
		if modes.KeypadApplication {
			return Transform(ss3, mods, kp.final), true
		}
		return kp.numeric, true
	}

	return "", false
}

func homeEnd(mods key.Modifier, modes Modes, final byte) string {
	if mods != key.ModNone {
		return Transform(csi+"1", mods, final)
	}
	if modes.CursorKeysApplication {
		return ss3 + string(final)
	}
	return csi + string(final)
}

func functionKey(mods key.Modifier, final byte) string {
	if mods == key.ModNone {
		return ss3 + string(final)
	}
	return Transform(csi+"1", mods, final)
}

// EncodeEvent is Encode for a key.Event.
func EncodeEvent(ev key.Event, modes Modes) (string, bool) {
	return Encode(ev.Key, ev.Modifiers, modes)
}
