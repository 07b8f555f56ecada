package key

import (
	"fmt"
	"strings"
)

// Key identifies a logical key on the input device.
// Printable characters are not keys: they go through ordinary text input.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Special keys
	KeyEscape
	KeyEnter
	KeyTab
	KeySpace
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Arrow keys and the directional pad center
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCenter

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Other special keys
	KeySysRq
	KeyBreak
	KeyNumLock
	KeyCapsLock
	KeyScrollLock

	// Device keys found on phones and remotes
	KeyVolumeUp
	KeyVolumeDown
	KeyBack

	// Keypad keys
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPAdd
	KeyKPSubtract
	KeyKPMultiply
	KeyKPDivide
	KeyKPDecimal
	KeyKPComma
	KeyKPEquals
	KeyKPEnter

	keyCount
)

var keyNames = [keyCount]string{
	KeyNone:       "None",
	KeyEscape:     "Escape",
	KeyEnter:      "Enter",
	KeyTab:        "Tab",
	KeySpace:      "Space",
	KeyBackspace:  "Backspace",
	KeyDelete:     "Delete",
	KeyInsert:     "Insert",
	KeyHome:       "Home",
	KeyEnd:        "End",
	KeyPageUp:     "PageUp",
	KeyPageDown:   "PageDown",
	KeyUp:         "Up",
	KeyDown:       "Down",
	KeyLeft:       "Left",
	KeyRight:      "Right",
	KeyCenter:     "Center",
	KeyF1:         "F1",
	KeyF2:         "F2",
	KeyF3:         "F3",
	KeyF4:         "F4",
	KeyF5:         "F5",
	KeyF6:         "F6",
	KeyF7:         "F7",
	KeyF8:         "F8",
	KeyF9:         "F9",
	KeyF10:        "F10",
	KeyF11:        "F11",
	KeyF12:        "F12",
	KeySysRq:      "SysRq",
	KeyBreak:      "Break",
	KeyNumLock:    "NumLock",
	KeyCapsLock:   "CapsLock",
	KeyScrollLock: "ScrollLock",
	KeyVolumeUp:   "VolumeUp",
	KeyVolumeDown: "VolumeDown",
	KeyBack:       "Back",
	KeyKP0:        "KP0",
	KeyKP1:        "KP1",
	KeyKP2:        "KP2",
	KeyKP3:        "KP3",
	KeyKP4:        "KP4",
	KeyKP5:        "KP5",
	KeyKP6:        "KP6",
	KeyKP7:        "KP7",
	KeyKP8:        "KP8",
	KeyKP9:        "KP9",
	KeyKPAdd:      "KP+",
	KeyKPSubtract: "KP-",
	KeyKPMultiply: "KP*",
	KeyKPDivide:   "KP/",
	KeyKPDecimal:  "KP.",
	KeyKPComma:    "KP,",
	KeyKPEquals:   "KP=",
	KeyKPEnter:    "KPEnter",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// Valid returns true if k is one of the defined keys other than KeyNone.
func (k Key) Valid() bool {
	return k > KeyNone && k < keyCount
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// IsArrowKey returns true if this is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyUp && k <= KeyRight
}

// IsNavigationKey returns true if this is a navigation key.
func (k Key) IsNavigationKey() bool {
	return k.IsArrowKey() || k == KeyHome || k == KeyEnd || k == KeyPageUp || k == KeyPageDown
}

// IsKeypadKey returns true if this is a keypad key.
func (k Key) IsKeypadKey() bool {
	return k >= KeyKP0 && k <= KeyKPEnter
}

// keyNameMap maps key names (lowercase) to Key values.
var keyNameMap = map[string]Key{
	"escape":     KeyEscape,
	"esc":        KeyEscape,
	"enter":      KeyEnter,
	"return":     KeyEnter,
	"cr":         KeyEnter,
	"tab":        KeyTab,
	"space":      KeySpace,
	"backspace":  KeyBackspace,
	"bs":         KeyBackspace,
	"delete":     KeyDelete,
	"del":        KeyDelete,
	"insert":     KeyInsert,
	"ins":        KeyInsert,
	"home":       KeyHome,
	"end":        KeyEnd,
	"pageup":     KeyPageUp,
	"pgup":       KeyPageUp,
	"pagedown":   KeyPageDown,
	"pgdn":       KeyPageDown,
	"up":         KeyUp,
	"down":       KeyDown,
	"left":       KeyLeft,
	"right":      KeyRight,
	"center":     KeyCenter,
	"sysrq":      KeySysRq,
	"print":      KeySysRq,
	"break":      KeyBreak,
	"pause":      KeyBreak,
	"numlock":    KeyNumLock,
	"capslock":   KeyCapsLock,
	"scrolllock": KeyScrollLock,
	"volumeup":   KeyVolumeUp,
	"volumedown": KeyVolumeDown,
	"back":       KeyBack,
	"kpenter":    KeyKPEnter,
}

func init() {
	// Canonical names always resolve, including F1-F12 and the keypad.
	for k := KeyNone + 1; k < keyCount; k++ {
		name := strings.ToLower(keyNames[k])
		if _, ok := keyNameMap[name]; !ok {
			keyNameMap[name] = k
		}
	}
}

// KeyFromName returns the Key for a given name (case-insensitive).
// Returns KeyNone if the name is not recognized.
func KeyFromName(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyNameMap[name]; ok {
		return k
	}
	return KeyNone
}
