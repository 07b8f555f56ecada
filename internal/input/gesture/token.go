package gesture

import "github.com/dshills/termkeys/internal/input/key"

// Token is one directional gesture. Lower-case tokens are the primary
// direction on an axis, upper-case the secondary one.
type Token byte

// The ten tokens, in table column order.
const (
	TokenF Token = 'f'
	TokenB Token = 'b'
	TokenU Token = 'u'
	TokenD Token = 'd'
	TokenT Token = 't'

	TokenShiftF Token = 'F'
	TokenShiftB Token = 'B'
	TokenShiftU Token = 'U'
	TokenShiftD Token = 'D'
	TokenShiftT Token = 'T'
)

var tokens = [...]Token{
	TokenF, TokenB, TokenU, TokenD, TokenT,
	TokenShiftF, TokenShiftB, TokenShiftU, TokenShiftD, TokenShiftT,
}

// Tokens returns the ten tokens in column order (f b u d t F B U D T).
func Tokens() []Token {
	out := make([]Token, len(tokens))
	copy(out, tokens[:])
	return out
}

// Valid reports whether t is one of the ten tokens.
func (t Token) Valid() bool {
	switch t {
	case TokenF, TokenB, TokenU, TokenD, TokenT,
		TokenShiftF, TokenShiftB, TokenShiftU, TokenShiftD, TokenShiftT:
		return true
	}
	return false
}

// String returns the single-letter token label.
func (t Token) String() string {
	return string(rune(t))
}

// ParseToken converts a one-letter label into a Token.
func ParseToken(s string) (Token, bool) {
	if len(s) != 1 {
		return 0, false
	}
	t := Token(s[0])
	return t, t.Valid()
}

// keyTokens binds the keys that double as gesture tokens.
var keyTokens = map[key.Key]Token{
	key.KeyRight:      TokenF,
	key.KeyLeft:       TokenB,
	key.KeyUp:         TokenU,
	key.KeyDown:       TokenD,
	key.KeyEnter:      TokenT,
	key.KeyDelete:     TokenShiftF,
	key.KeyBackspace:  TokenShiftB,
	key.KeyVolumeUp:   TokenShiftU,
	key.KeyVolumeDown: TokenShiftD,
	key.KeyBack:       TokenShiftT,
}

// TokenForKey returns the token a key produces, if it is one of the ten
// directional keys. Modifiers play no part.
func TokenForKey(k key.Key) (Token, bool) {
	t, ok := keyTokens[k]
	return t, ok
}
