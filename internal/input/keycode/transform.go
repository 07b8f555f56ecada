package keycode

import (
	"strconv"

	"github.com/dshills/termkeys/internal/input/key"
)

// ModifierCode returns the xterm modifier parameter for mods, or 0 when
// no parameter applies.
//
//	Shift 2, Alt 3, Shift+Alt 4, Ctrl 5, Shift+Ctrl 6, Alt+Ctrl 7, all three 8
func ModifierCode(mods key.Modifier) int {
	switch mods {
	case key.ModShift:
		return 2
	case key.ModAlt:
		return 3
	case key.ModShift | key.ModAlt:
		return 4
	case key.ModCtrl:
		return 5
	case key.ModShift | key.ModCtrl:
		return 6
	case key.ModAlt | key.ModCtrl:
		return 7
	case key.ModShift | key.ModAlt | key.ModCtrl:
		return 8
	default:
		return 0
	}
}

// Transform appends the modifier parameter and final byte to prefix:
// prefix + ";" + code + final, or prefix + final when no code applies.
func Transform(prefix string, mods key.Modifier, final byte) string {
	code := ModifierCode(mods)
	if code == 0 {
		return prefix + string(final)
	}
	return prefix + ";" + strconv.Itoa(code) + string(final)
}
