package key

import (
	"fmt"
	"strings"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewEvent creates a key event.
func NewEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsModified returns true if any modifier is pressed.
func (e Event) IsModified() bool {
	return e.Modifiers != ModNone
}

// String returns a canonical "Ctrl+Shift+F1" style representation.
func (e Event) String() string {
	if e.Modifiers == ModNone {
		return e.Key.String()
	}
	return e.Modifiers.String() + "+" + e.Key.String()
}

// VimString returns a Vim-style string representation.
// Examples: "<Esc>", "<C-Space>", "<S-F1>", "<CR>"
func (e Event) VimString() string {
	var parts []string

	if e.Modifiers.HasCtrl() {
		parts = append(parts, "C")
	}
	if e.Modifiers.HasAlt() {
		parts = append(parts, "A")
	}
	if e.Modifiers.HasShift() {
		parts = append(parts, "S")
	}

	var keyName string
	switch e.Key {
	case KeyEscape:
		keyName = "Esc"
	case KeyEnter:
		keyName = "CR"
	case KeyBackspace:
		keyName = "BS"
	case KeyDelete:
		keyName = "Del"
	case KeyInsert:
		keyName = "Ins"
	default:
		keyName = e.Key.String()
	}

	parts = append(parts, keyName)

	return "<" + strings.Join(parts, "-") + ">"
}

// Equals returns true if two events represent the same key press.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key && e.Modifiers == other.Modifiers
}

// Matches checks if this event matches a key specification string.
func (e Event) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return e.Equals(parsed)
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Modifiers: %s}", e.Key.String(), e.Modifiers.String())
}
