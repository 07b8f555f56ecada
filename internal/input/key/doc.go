// Package key provides the logical key and modifier types shared by the
// encoder, the termcap table and the gesture front end.
//
// This package defines the fundamental types for representing key presses:
//
//   - Key: Identifies a logical key (navigation, function, keypad, device keys)
//   - Modifier: Bit set over Shift, Ctrl and Alt
//   - Event: A key together with the modifiers held while it was pressed
//
// # Key Specifications
//
// Key specifications can be written in multiple formats:
//
//   - Key names: "Enter", "Escape", "F5", "KP7", "VolumeUp"
//   - With modifiers: "Ctrl+Space", "Alt+F4", "Ctrl+Shift+Home"
//   - Vim-style: "<C-Space>", "<S-Tab>", "<CR>", "<Esc>"
//
// Printable characters are deliberately absent: a key press that produces
// text has no escape sequence and is inserted by the caller.
package key
