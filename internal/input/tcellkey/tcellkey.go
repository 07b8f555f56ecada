// Package tcellkey converts tcell key events into logical key events.
package tcellkey

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termkeys/internal/input/key"
)

var keyMap = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
	tcell.KeyPrint:      key.KeySysRq,
	tcell.KeyPause:      key.KeyBreak,
}

// Convert maps a tcell key event to a key.Event. It returns false for
// printable runes other than space and for keys with no logical
// counterpart; the caller treats those as text.
func Convert(ev *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(ev.Modifiers())

	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return key.NewEvent(key.KeySpace, mods), true
		}
		return key.Event{}, false
	case tcell.KeyBacktab:
		return key.NewEvent(key.KeyTab, mods.With(key.ModShift)), true
	case tcell.KeyCtrlSpace:
		return key.NewEvent(key.KeySpace, mods.With(key.ModCtrl)), true
	}

	if k, ok := keyMap[ev.Key()]; ok {
		return key.NewEvent(k, mods), true
	}
	return key.Event{}, false
}

// convertMod folds Meta into Alt; terminals deliver both as an ESC prefix.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result = result.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		result = result.With(key.ModCtrl)
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		result = result.With(key.ModAlt)
	}
	return result
}
