package lua

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dshills/termkeys/internal/input/keycode"
	"github.com/dshills/termkeys/internal/logging"
)

func newModuleState(t *testing.T, m *Module) *State {
	t.Helper()
	s := NewState()
	if err := m.Install(s); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func evalString(t *testing.T, s *State, expr string) string {
	t.Helper()
	if err := s.DoString("result = " + expr); err != nil {
		t.Fatalf("%s: %v", expr, err)
	}
	return s.GetGlobal("result").String()
}

func TestModuleEncode(t *testing.T) {
	s := newModuleState(t, NewModule())

	tests := []struct {
		expr string
		want string
	}{
		{`termkeys.encode("<C-F5>")`, "\x1b[15;5~"},
		{`termkeys.encode("Home")`, "\x1b[H"},
		{`termkeys.encode("Home", {cursor_app = true})`, "\x1bOH"},
		{`termkeys.encode("KP5", {keypad_app = true})`, "\x1bOu"},
		{`termkeys.encode("Shift+Tab")`, "\x1b[Z"},
		{`tostring(termkeys.encode("Space"))`, "nil"},
		{`require("termkeys").encode("F1")`, "\x1bOP"},
	}

	for _, tt := range tests {
		if got := evalString(t, s, tt.expr); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.expr, got, tt.want)
		}
	}

	if err := s.DoString(`termkeys.encode("<Nope>")`); err == nil {
		t.Error("encode of an unknown key should raise")
	}
}

func TestModuleEncodeUsesModesFunc(t *testing.T) {
	modes := keycode.Modes{CursorKeysApplication: true}
	s := newModuleState(t, NewModule(WithModesFunc(func() keycode.Modes { return modes })))

	if got := evalString(t, s, `termkeys.encode("End")`); got != "\x1bOF" {
		t.Errorf("encode(End) = %q, want ESC O F", got)
	}
}

func TestModuleTransform(t *testing.T) {
	s := newModuleState(t, NewModule())

	tests := []struct {
		expr string
		want string
	}{
		{`termkeys.transform("\27[1", "C-S", "A")`, "\x1b[1;6A"},
		{`termkeys.transform("\27[1", "", "A")`, "\x1b[1A"},
		{`termkeys.transform("\27[15", "Alt", "~")`, "\x1b[15;3~"},
		{`tostring(termkeys.modifier_code("Ctrl+Alt+Shift"))`, "8"},
		{`tostring(termkeys.modifier_code(""))`, "0"},
	}

	for _, tt := range tests {
		if got := evalString(t, s, tt.expr); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.expr, got, tt.want)
		}
	}

	if err := s.DoString(`termkeys.transform("\27[1", "C", "AB")`); err == nil {
		t.Error("multi-byte final should raise")
	}
}

func TestModuleTermcapAndParse(t *testing.T) {
	s := newModuleState(t, NewModule())

	if got := evalString(t, s, `termkeys.termcap("kN")`); got != "PageDown" {
		t.Errorf("termcap(kN) = %q, want PageDown", got)
	}
	if got := evalString(t, s, `termkeys.termcap("#4")`); got != "Shift+Left" {
		t.Errorf("termcap(#4) = %q, want Shift+Left", got)
	}
	if got := evalString(t, s, `tostring(termkeys.termcap("zz"))`); got != "nil" {
		t.Errorf("termcap(zz) = %q, want nil", got)
	}

	if err := s.DoString(`
		local ev = termkeys.parse("<C-A-Up>")
		result = ev.key .. ":" .. tostring(ev.ctrl) .. tostring(ev.alt) .. tostring(ev.shift) .. ":" .. ev.spec
	`); err != nil {
		t.Fatal(err)
	}
	if got := s.GetGlobal("result").String(); got != "Up:truetruefalse:<C-A-Up>" {
		t.Errorf("parse = %q", got)
	}

	if got := evalString(t, s, `select(2, termkeys.parse(""))`); !strings.Contains(got, "empty") {
		t.Errorf("parse(\"\") error = %q", got)
	}
}

func TestModuleKeys(t *testing.T) {
	s := newModuleState(t, NewModule())

	if got := evalString(t, s, `termkeys.keys()[1]`); got != "Escape" {
		t.Errorf("keys()[1] = %q, want Escape", got)
	}
	if got := evalString(t, s, `termkeys.keys()[#termkeys.keys()]`); got != "KPEnter" {
		t.Errorf("last key = %q, want KPEnter", got)
	}
}

func TestModuleLog(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})
	s := newModuleState(t, NewModule(WithModuleLogger(logger)))

	if err := s.DoString(`termkeys.log("warn", "careful"); termkeys.log("debug", "detail")`); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "careful") {
		t.Errorf("warn line missing: %q", out)
	}
	if !strings.Contains(out, "[DEBUG]") || !strings.Contains(out, "component=lua") {
		t.Errorf("debug line missing: %q", out)
	}
}
