package key

import (
	"testing"
)

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NewEvent(KeyF1, ModNone), "F1"},
		{NewEvent(KeyF1, ModShift), "Shift+F1"},
		{NewEvent(KeySpace, ModCtrl), "Ctrl+Space"},
		{NewEvent(KeyHome, ModCtrl|ModShift), "Ctrl+Shift+Home"},
	}

	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("Event.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestEventVimString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NewEvent(KeyEscape, ModNone), "<Esc>"},
		{NewEvent(KeyEnter, ModNone), "<CR>"},
		{NewEvent(KeySpace, ModCtrl), "<C-Space>"},
		{NewEvent(KeyTab, ModShift), "<S-Tab>"},
		{NewEvent(KeyF4, ModCtrl|ModAlt|ModShift), "<C-A-S-F4>"},
		{NewEvent(KeyKPSubtract, ModAlt), "<A-KP->"},
	}

	for _, tt := range tests {
		if got := tt.event.VimString(); got != tt.want {
			t.Errorf("Event.VimString() = %q, want %q", got, tt.want)
		}
	}
}

func TestEventEquals(t *testing.T) {
	a := NewEvent(KeyTab, ModShift)
	if !a.Equals(NewEvent(KeyTab, ModShift)) {
		t.Error("identical events should be equal")
	}
	if a.Equals(NewEvent(KeyTab, ModNone)) {
		t.Error("events with different modifiers should not be equal")
	}
	if a.Equals(NewEvent(KeyEnter, ModShift)) {
		t.Error("events with different keys should not be equal")
	}
}

func TestEventMatches(t *testing.T) {
	ev := NewEvent(KeySpace, ModCtrl)
	if !ev.Matches("Ctrl+Space") {
		t.Error("Ctrl+Space should match")
	}
	if !ev.Matches("<C-Space>") {
		t.Error("<C-Space> should match")
	}
	if ev.Matches("Space") {
		t.Error("Space should not match Ctrl+Space")
	}
	if ev.Matches("") {
		t.Error("empty spec should not match")
	}
}

func TestEventIsModified(t *testing.T) {
	if NewEvent(KeyF1, ModNone).IsModified() {
		t.Error("unmodified event reported as modified")
	}
	if !NewEvent(KeyF1, ModAlt).IsModified() {
		t.Error("Alt event reported as unmodified")
	}
}
