package gesture

import "sort"

// State labels the token prefix consumed so far.
type State string

// Root is the state with no pending prefix.
const Root State = "root"

// Step is one cell of the transition table: either emit a value and
// return to Root, or move to Next without output.
type Step struct {
	Emit string
	Next State
}

// IsTransition reports whether the step moves to a deeper state.
func (s Step) IsTransition() bool {
	return s.Next != ""
}

func emit(v string) Step { return Step{Emit: v} }
func to(s State) Step    { return Step{Next: s} }

// emits builds a row that emits one value per token, in column order
// f b u d t F B U D T.
func emits(values ...string) map[Token]Step {
	if len(values) != len(tokens) {
		panic("gesture: row needs one value per token")
	}
	row := make(map[Token]Step, len(tokens))
	for i, v := range values {
		row[tokens[i]] = emit(v)
	}
	return row
}

// unassigned marks a slot that is reachable but has no meaning yet.
const unassigned = "?"

// table is the whole decoding graph. A token missing from a non-root row
// resets to Root without output.
//
// Braces, quote, pipe and the remaining punctuation have no path: a
// second "Du" row for them would be shadowed by the one below.
var table = map[State]map[Token]Step{
	Root: {
		TokenF:      emit(" "),
		TokenB:      emit("\x7f"),
		TokenU:      to("u"),
		TokenD:      to("d"),
		TokenT:      to("t"),
		TokenShiftF: emit("e"),
		TokenShiftB: emit("t"),
		TokenShiftU: to("U"),
		TokenShiftD: to("D"),
		TokenShiftT: to("T"),
	},

	// Lower-case letters and cursor movement.
	"u": emits("a", "b", "c", "d", "\x1b", "f", "g", "h", "i", "j"),
	"d": emits("k", "l", "m", "n", "o", "p", "q", "r", "s", "z"),
	"t": emits("u", "v", "w", "x", "y", "\x1b[C", "\x1b[D", "\x1b[A", "\x1b[B", "\r"),

	"U": {
		TokenF:      emit("."),
		TokenB:      emit(","),
		TokenU:      to("Uu"),
		TokenD:      to("Ud"),
		TokenT:      to("Ut"),
		TokenShiftF: emit(unassigned),
		TokenShiftB: emit("T"),
		TokenShiftU: emit("VU"),
		TokenShiftD: emit("\x1b[Z"),
		TokenShiftT: to("UT"),
	},
	"D": {
		TokenF:      to("Df"),
		TokenB:      to("Db"),
		TokenU:      to("Du"),
		TokenD:      emit(unassigned),
		TokenT:      emit(unassigned),
		TokenShiftF: emit(unassigned),
		TokenShiftB: to("DB"),
		TokenShiftU: emit(unassigned),
		TokenShiftD: emit("VD"),
		TokenShiftT: to("DT"),
	},

	// Digits.
	"T": emits("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),

	// Upper-case letters, paging and function keys.
	"Uu": emits("A", "B", "C", "D", "E", "F", "G", "H", "I", "J"),
	"Ud": emits("K", "L", "M", "N", "O", "P", "Q", "R", "S", "Z"),
	"Ut": emits("U", "V", "W", "X", "Y", "\x1b[1~", "\x1b[4~", "\x1b[5~", "\x1b[6~", "+"),
	"UT": emits("\x1bOP", "\x1bOQ", "\x1bOR", "\x1bOS", "\x1b[15~", "\x1b[17~", "\x1b[18~", "\x1b[19~", "\x1b[20~", "\x1b[21~"),

	// Punctuation.
	"Df": emits("!", "@", "#", "$", "%", "^", "&", "*", "`", "~"),
	"Du": emits(")", "(", "/", "\\", "?", "]", "[", "-", "_", ";"),

	// Reachable but never assigned: every token resets.
	"Db": {},

	"DB": {
		TokenF:      emit(unassigned),
		TokenB:      emit(unassigned),
		TokenU:      to("DBu"),
		TokenD:      to("DBd"),
		TokenT:      to("DBt"),
		TokenShiftF: emit(unassigned),
		TokenShiftB: emit(unassigned),
		TokenShiftU: emit(unassigned),
		TokenShiftD: emit(unassigned),
		TokenShiftT: emit(unassigned),
	},
	"DT": emits("\x1b[23~", "\x1b[24~", unassigned, unassigned, unassigned, unassigned, unassigned, unassigned, unassigned, unassigned),

	// C0 controls ^A through ^Z.
	"DBu": emits("\x01", "\x02", "\x03", "\x04", "\x05", "\x06", "\x07", "\x08", "\x09", "\x0a"),
	"DBd": emits("\x0b", "\x0c", "\x0d", "\x0e", "\x0f", "\x10", "\x11", "\x12", "\x13", "\x14"),
	"DBt": emits("\x15", "\x16", "\x17", "\x18", "\x19", "\x1a", unassigned, unassigned, unassigned, unassigned),
}

// Lookup returns the table cell for a state and token.
func Lookup(s State, t Token) (Step, bool) {
	step, ok := table[s][t]
	return step, ok
}

// States returns every state label in sorted order.
func States() []State {
	out := make([]State, 0, len(table))
	for s := range table {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RootOutput returns what a single token emits from the root state.
// Tokens that open a prefix return false.
func RootOutput(t Token) (string, bool) {
	step, ok := table[Root][t]
	if !ok || step.IsTransition() {
		return "", false
	}
	return step.Emit, true
}
