// Package termcap maps termcap/terminfo key capability names to the
// logical key and modifiers the keycode encoder understands.
//
// References:
//   - terminfo: http://pubs.opengroup.org/onlinepubs/7990989799/xcurses/terminfo.html
//   - termcap: http://man7.org/linux/man-pages/man5/termcap.5.html
package termcap

import (
	"sort"

	"github.com/dshills/termkeys/internal/input/key"
)

// Entry binds a capability name to a key press.
type Entry struct {
	// Name is the two or three character termcap name, e.g. "kh".
	Name string

	// Key is the logical key the capability refers to.
	Key key.Key

	// Modifiers are held together with Key.
	Modifiers key.Modifier
}

// Event returns the entry as a key event.
func (e Entry) Event() key.Event {
	return key.NewEvent(e.Key, e.Modifiers)
}

var entries = []Entry{
	{"%i", key.KeyRight, key.ModShift},
	{"#2", key.KeyHome, key.ModShift}, // shifted home
	{"#4", key.KeyLeft, key.ModShift},
	{"*7", key.KeyEnd, key.ModShift}, // shifted end

	{"k1", key.KeyF1, key.ModNone},
	{"k2", key.KeyF2, key.ModNone},
	{"k3", key.KeyF3, key.ModNone},
	{"k4", key.KeyF4, key.ModNone},
	{"k5", key.KeyF5, key.ModNone},
	{"k6", key.KeyF6, key.ModNone},
	{"k7", key.KeyF7, key.ModNone},
	{"k8", key.KeyF8, key.ModNone},
	{"k9", key.KeyF9, key.ModNone},
	{"k;", key.KeyF10, key.ModNone},
	{"F1", key.KeyF11, key.ModNone},
	{"F2", key.KeyF12, key.ModNone},
	{"F3", key.KeyF1, key.ModShift},
	{"F4", key.KeyF2, key.ModShift},
	{"F5", key.KeyF3, key.ModShift},
	{"F6", key.KeyF4, key.ModShift},
	{"F7", key.KeyF5, key.ModShift},
	{"F8", key.KeyF6, key.ModShift},
	{"F9", key.KeyF7, key.ModShift},
	{"FA", key.KeyF8, key.ModShift},
	{"FB", key.KeyF9, key.ModShift},
	{"FC", key.KeyF10, key.ModShift},
	{"FD", key.KeyF11, key.ModShift},
	{"FE", key.KeyF12, key.ModShift},

	{"kb", key.KeyBackspace, key.ModNone},

	{"kd", key.KeyDown, key.ModNone}, // kcud1
	{"kh", key.KeyHome, key.ModNone},
	{"kl", key.KeyLeft, key.ModNone},
	{"kr", key.KeyRight, key.ModNone},

	// Keypad block: K1 upper left (home), K3 page up, K4 end, K5 page down.
	{"K1", key.KeyHome, key.ModNone},
	{"K3", key.KeyPageUp, key.ModNone},
	{"K4", key.KeyEnd, key.ModNone},
	{"K5", key.KeyPageDown, key.ModNone},

	{"ku", key.KeyUp, key.ModNone},

	{"kB", key.KeyTab, key.ModShift},  // kcbt, back-tab
	{"kD", key.KeyDelete, key.ModNone}, // kdch1
	{"kDN", key.KeyDown, key.ModShift}, // non-standard shifted down
	{"kF", key.KeyDown, key.ModShift},  // kind, scroll forward
	{"kI", key.KeyInsert, key.ModNone},
	{"kN", key.KeyPageUp, key.ModNone},
	{"kP", key.KeyPageDown, key.ModNone},
	{"kR", key.KeyUp, key.ModShift},  // kri, scroll backward
	{"kUP", key.KeyUp, key.ModShift}, // non-standard shifted up

	{"@7", key.KeyEnd, key.ModNone},
	{"@8", key.KeyKPEnter, key.ModNone},
}

var byName = func() map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if _, dup := m[e.Name]; dup {
			panic("termcap: duplicate capability " + e.Name)
		}
		m[e.Name] = e
	}
	return m
}()

// Lookup returns the key press for a capability name.
// Names are matched exactly and case-sensitively; "kh" and "KH" differ.
func Lookup(name string) (Entry, bool) {
	e, ok := byName[name]
	return e, ok
}

// Names returns every capability name in sorted order.
func Names() []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

// All returns a copy of every entry in table order.
func All() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Len returns the number of capabilities in the table.
func Len() int {
	return len(entries)
}
