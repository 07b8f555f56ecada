package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec        = errors.New("empty key specification")
	ErrInvalidSpec      = errors.New("invalid key specification")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Key names: "Enter", "Escape", "Tab", "F5", "KP7", "VolumeUp"
//   - With modifiers: "Ctrl+Space", "Alt+F4", "Ctrl+Shift+Home"
//   - Vim-style: "<C-Space>", "<S-Tab>", "<CR>", "<Esc>"
//
// Printable characters other than space are rejected: they have no
// logical key and are delivered as text.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	// Check for Vim-style <...> notation
	if strings.HasPrefix(spec, "<") {
		if !strings.HasSuffix(spec, ">") {
			return Event{}, ErrUnmatchedBracket
		}
		return parseVimStyle(spec[1 : len(spec)-1])
	}
	if strings.HasSuffix(spec, ">") && len(spec) > 1 {
		return Event{}, ErrUnmatchedBracket
	}

	// Check for modifier+key format (Ctrl+S, Alt+F4). A lone "+" is the
	// keypad-less plus sign, which is not a key.
	if strings.Contains(spec, "+") && !strings.HasPrefix(strings.ToLower(spec), "kp+") {
		return parseModifierStyle(spec)
	}

	return parseKeyWithModifiers(spec, ModNone)
}

// parseVimStyle parses Vim-style notation like "C-Space", "S-F4", "CR"
func parseVimStyle(inner string) (Event, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Event{}, ErrInvalidSpec
	}

	// Split by hyphen to get modifiers and key
	parts := strings.Split(inner, "-")

	var mods Modifier
	keyPart := parts[len(parts)-1]

	// "KP-" keeps its hyphen
	if keyPart == "" && len(parts) >= 2 && strings.EqualFold(parts[len(parts)-2], "kp") {
		keyPart = "KP-"
		parts = parts[:len(parts)-1]
	}

	for _, p := range parts[:len(parts)-1] {
		p = strings.ToLower(strings.TrimSpace(p))
		switch p {
		case "c":
			mods = mods.With(ModCtrl)
		case "a", "m":
			mods = mods.With(ModAlt)
		case "s":
			mods = mods.With(ModShift)
		default:
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}

	return parseKeyWithModifiers(keyPart, mods)
}

// parseModifierStyle parses "Ctrl+S" style notation
func parseModifierStyle(spec string) (Event, error) {
	parts := strings.Split(spec, "+")
	if len(parts) < 2 {
		return Event{}, ErrInvalidSpec
	}

	keyPart := strings.TrimSpace(parts[len(parts)-1])
	modParts := parts[:len(parts)-1]

	// "Ctrl+KP+" splits into [..., "KP", ""]
	if keyPart == "" && len(parts) >= 2 && strings.EqualFold(strings.TrimSpace(parts[len(parts)-2]), "kp") {
		keyPart = "KP+"
		modParts = parts[:len(parts)-2]
	}

	var mods Modifier
	for _, p := range modParts {
		p = strings.TrimSpace(p)
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	return parseKeyWithModifiers(keyPart, mods)
}

// parseKeyWithModifiers parses a key part with already-known modifiers
func parseKeyWithModifiers(keyPart string, mods Modifier) (Event, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	if k := KeyFromName(keyPart); k != KeyNone {
		return NewEvent(k, mods), nil
	}

	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}

// FormatSpec formats a key event as a specification string.
// This produces a canonical form that can be parsed back.
func FormatSpec(event Event) string {
	return event.VimString()
}

// NormalizeSpec parses and re-formats a key specification to its canonical form.
func NormalizeSpec(spec string) (string, error) {
	event, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return FormatSpec(event), nil
}
