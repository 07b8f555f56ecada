// Package notify delivers per-setting change notifications when a new
// configuration replaces the running one.
//
// Components subscribe to a dotted setting path ("gesture.debounce_ms")
// or to a section ("terminal") and are called once for every changed
// setting under it. Delivery is synchronous and ordered by path.
package notify

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Change describes one setting that differs between two configurations.
type Change struct {
	// Path is the dot-separated setting path.
	Path string

	// OldValue and NewValue are the setting before and after.
	OldValue any
	NewValue any

	// Source identifies where the new value came from, usually a file.
	Source string
}

func (c Change) String() string {
	return fmt.Sprintf("%s: %v -> %v", c.Path, c.OldValue, c.NewValue)
}

// Observer is called for each matching change.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

type entry struct {
	path     string
	observer Observer
}

// Notifier manages change subscriptions.
type Notifier struct {
	mu        sync.RWMutex
	observers map[uint64]entry
	nextID    uint64
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{observers: make(map[uint64]entry)}
}

// Subscribe registers an observer for every change.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.SubscribePath("", observer)
}

// SubscribePath registers an observer for changes to path and to any
// setting below it. "terminal" receives "terminal.keypad_application".
func (n *Notifier) SubscribePath(path string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers[id] = entry{path: path, observer: observer}
	return &Subscription{id: id, notifier: n}
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.observers)
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.observers, id)
}

// Notify delivers change to every matching observer in subscription
// order. Observers run without the notifier lock held.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	ids := make([]uint64, 0, len(n.observers))
	for id, e := range n.observers {
		if matches(e.path, change.Path) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	observers := make([]Observer, len(ids))
	for i, id := range ids {
		observers[i] = n.observers[id].observer
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(change)
	}
}

// Publish computes the changes between two flattened configurations and
// notifies each one. It returns the changes delivered.
func (n *Notifier) Publish(prev, next map[string]any, source string) []Change {
	changes := Diff(prev, next, source)
	for _, c := range changes {
		n.Notify(c)
	}
	return changes
}

// Diff returns the settings whose values differ, sorted by path. A path
// present on only one side reports nil for the other.
func Diff(prev, next map[string]any, source string) []Change {
	var changes []Change
	for path, nv := range next {
		ov, ok := prev[path]
		if !ok || !reflect.DeepEqual(ov, nv) {
			changes = append(changes, Change{Path: path, OldValue: ov, NewValue: nv, Source: source})
		}
	}
	for path, ov := range prev {
		if _, ok := next[path]; !ok {
			changes = append(changes, Change{Path: path, OldValue: ov, Source: source})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes
}

// matches reports whether a subscription on sub covers path.
func matches(sub, path string) bool {
	if sub == "" || sub == path {
		return true
	}
	return strings.HasPrefix(path, sub) && path[len(sub)] == '.'
}
