package config

import (
	"sync"
	"time"

	"github.com/dshills/termkeys/internal/config/watcher"
)

// ReloadFunc receives the freshly loaded configuration, or the error that
// prevented loading it. The previous configuration stays in effect on error.
type ReloadFunc func(cfg *Config, err error)

// Watcher reloads a config file when it changes on disk.
type Watcher struct {
	mu       sync.Mutex
	path     string
	fw       *watcher.Watcher
	onReload ReloadFunc
	load     func(path string) (*Config, error)
	closed   bool
}

// Watch starts watching the config file at path and calls onReload after
// each settled change. The file does not need to exist yet.
func Watch(path string, onReload ReloadFunc) (*Watcher, error) {
	return watchWith(path, onReload, Load, 100*time.Millisecond)
}

func watchWith(path string, onReload ReloadFunc, load func(string) (*Config, error), debounce time.Duration) (*Watcher, error) {
	w := &Watcher{
		path:     path,
		onReload: onReload,
		load:     load,
		fw:       watcher.New(watcher.WithDebounce(debounce)),
	}
	w.fw.OnChange(w.handle)

	if err := w.fw.Watch(path); err != nil {
		return nil, err
	}
	if err := w.fw.Start(); err != nil {
		return nil, err
	}
	return w, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) handle(watcher.Event) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	cfg, err := w.load(w.path)
	w.onReload(cfg, err)
}

// Close stops watching. Closing twice returns ErrWatcherClosed.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	w.mu.Unlock()

	w.fw.Stop()
	return nil
}
