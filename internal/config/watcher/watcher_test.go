package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// recorder collects events delivered to a handler.
type recorder struct {
	mu     sync.Mutex
	events []Event
	ch     chan struct{}
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan struct{}, 64)}
}

func (r *recorder) handle(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	r.ch <- struct{}{}
}

func (r *recorder) wait(t *testing.T) Event {
	t.Helper()
	select {
	case <-r.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[0]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestNew(t *testing.T) {
	w := New()
	if w.debounce != 100*time.Millisecond {
		t.Errorf("default debounce = %v, want 100ms", w.debounce)
	}

	w = New(WithDebounce(50 * time.Millisecond))
	if w.debounce != 50*time.Millisecond {
		t.Errorf("debounce = %v, want 50ms", w.debounce)
	}

	w = New(WithDebounce(-1))
	if w.debounce != 100*time.Millisecond {
		t.Errorf("negative debounce changed value to %v", w.debounce)
	}
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestCoalesce(t *testing.T) {
	tests := []struct {
		existing, next, want Operation
	}{
		{OpCreate, OpWrite, OpCreate},
		{OpWrite, OpWrite, OpWrite},
		{OpCreate, OpRemove, OpRemove},
		{OpWrite, OpRemove, OpRemove},
		{OpRemove, OpCreate, OpCreate},
	}

	for _, tt := range tests {
		if got := coalesce(tt.existing, tt.next); got != tt.want {
			t.Errorf("coalesce(%v, %v) = %v, want %v", tt.existing, tt.next, got, tt.want)
		}
	}
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "termkeys.toml")

	w := New()
	if err := w.Watch(tmpFile); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if err := w.Watch(tmpFile); err != nil {
		t.Fatalf("second Watch() error = %v", err)
	}
	if files := w.WatchedFiles(); len(files) != 1 {
		t.Errorf("WatchedFiles() = %d files, want 1", len(files))
	}

	if err := w.Unwatch(tmpFile); err != nil {
		t.Errorf("Unwatch() error = %v", err)
	}
	if files := w.WatchedFiles(); len(files) != 0 {
		t.Errorf("WatchedFiles() = %d files, want 0", len(files))
	}
}

func TestWatcher_StartStop(t *testing.T) {
	w := New()
	_ = w.Watch(filepath.Join(t.TempDir(), "a.toml"))

	if w.IsRunning() {
		t.Error("IsRunning() = true before Start()")
	}

	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("second Start() error = %v", err)
	}
	if !w.IsRunning() {
		t.Error("IsRunning() = false after Start()")
	}

	w.Stop()
	w.Stop()
	if w.IsRunning() {
		t.Error("IsRunning() = true after Stop()")
	}
}

func TestWatcher_StartMissingDirectory(t *testing.T) {
	w := New()
	_ = w.Watch(filepath.Join(t.TempDir(), "nope", "a.toml"))

	if err := w.Start(); err == nil {
		w.Stop()
		t.Fatal("Start() succeeded for a missing directory")
	}
	if w.IsRunning() {
		t.Error("IsRunning() = true after failed Start()")
	}
}

func TestWatcher_DetectsFileModification(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "termkeys.toml")
	if err := os.WriteFile(tmpFile, []byte("initial"), 0644); err != nil {
		t.Fatal(err)
	}

	w := New(WithDebounce(0))
	rec := newRecorder()
	w.OnChange(rec.handle)

	_ = w.Watch(tmpFile)
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(tmpFile, []byte("modified"), 0644); err != nil {
		t.Fatal(err)
	}

	ev := rec.wait(t)
	if ev.Op != OpWrite {
		t.Errorf("event.Op = %v, want write", ev.Op)
	}
	if ev.Path != tmpFile {
		t.Errorf("event.Path = %q, want %q", ev.Path, tmpFile)
	}
}

func TestWatcher_DetectsFileCreation(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "new.toml")

	w := New(WithDebounce(0))
	rec := newRecorder()
	w.OnChange(rec.handle)

	_ = w.Watch(tmpFile)
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(tmpFile, []byte("created"), 0644); err != nil {
		t.Fatal(err)
	}

	if ev := rec.wait(t); ev.Op != OpCreate {
		t.Errorf("event.Op = %v, want create", ev.Op)
	}
}

func TestWatcher_DetectsFileDeletion(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "delete.toml")
	if err := os.WriteFile(tmpFile, []byte("initial"), 0644); err != nil {
		t.Fatal(err)
	}

	w := New(WithDebounce(0))
	rec := newRecorder()
	w.OnChange(rec.handle)

	_ = w.Watch(tmpFile)
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.Remove(tmpFile); err != nil {
		t.Fatal(err)
	}

	if ev := rec.wait(t); ev.Op != OpRemove {
		t.Errorf("event.Op = %v, want remove", ev.Op)
	}
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "termkeys.toml")
	sibling := filepath.Join(dir, "other.toml")

	w := New(WithDebounce(0))
	rec := newRecorder()
	w.OnChange(rec.handle)

	_ = w.Watch(watched)
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(sibling, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)

	if n := rec.count(); n != 0 {
		t.Errorf("received %d events for an unwatched sibling", n)
	}
}

func TestWatcher_Debounce(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "burst.toml")
	if err := os.WriteFile(tmpFile, []byte("0"), 0644); err != nil {
		t.Fatal(err)
	}

	w := New(WithDebounce(150 * time.Millisecond))
	rec := newRecorder()
	w.OnChange(rec.handle)

	_ = w.Watch(tmpFile)
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(tmpFile, []byte{byte('1' + i)}, 0644); err != nil {
			t.Fatal(err)
		}
	}

	ev := rec.wait(t)
	if ev.Op != OpWrite {
		t.Errorf("event.Op = %v, want write", ev.Op)
	}

	time.Sleep(300 * time.Millisecond)
	if n := rec.count(); n != 1 {
		t.Errorf("burst produced %d events, want 1", n)
	}
}
