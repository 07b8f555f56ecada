package keycode

// Modes are the terminal input modes that change how keys encode.
// They are owned by whoever tracks the terminal's DECCKM/DECKPAM state.
type Modes struct {
	// CursorKeysApplication is DECCKM: cursor keys send SS3 sequences.
	CursorKeysApplication bool

	// KeypadApplication is DECKPAM: keypad keys send SS3 sequences.
	KeypadApplication bool
}
