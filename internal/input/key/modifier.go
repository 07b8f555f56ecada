package key

import "strings"

// Modifier is the three-bit set of modifiers xterm reports. The bit
// weights match xterm's: the CSI parameter for a set m is 1+m.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

// ModMask covers every modifier bit the encoder understands.
const ModMask = ModShift | ModAlt | ModCtrl

// Has reports whether m contains every bit of mod.
func (m Modifier) Has(mod Modifier) bool {
	return mod != ModNone && m&mod == mod
}

func (m Modifier) HasShift() bool { return m&ModShift != 0 }
func (m Modifier) HasAlt() bool   { return m&ModAlt != 0 }
func (m Modifier) HasCtrl() bool  { return m&ModCtrl != 0 }

// With returns m plus mod.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// String renders the set as "Ctrl+Alt+Shift", omitting absent bits.
func (m Modifier) String() string {
	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if m.HasAlt() {
		parts = append(parts, "Alt")
	}
	if m.HasShift() {
		parts = append(parts, "Shift")
	}
	return strings.Join(parts, "+")
}

// modifierNames holds every accepted spelling, lower case. Terminals
// deliver Meta as Alt, so it folds onto the same bit.
var modifierNames = map[string]Modifier{
	"shift":   ModShift,
	"s":       ModShift,
	"alt":     ModAlt,
	"a":       ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"meta":    ModAlt,
	"m":       ModAlt,
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"c":       ModCtrl,
}

// ModifierFromName returns the bit for a modifier name, or ModNone.
func ModifierFromName(name string) Modifier {
	return modifierNames[strings.ToLower(name)]
}

// ParseModifiers reads a modifier list such as "ctrl+shift", "C-A" or
// "alt shift". Unknown names contribute nothing.
func ParseModifiers(s string) Modifier {
	var mods Modifier
	for _, name := range strings.FieldsFunc(s, func(r rune) bool {
		return r == '+' || r == '-' || r == ' '
	}) {
		mods |= ModifierFromName(name)
	}
	return mods
}
