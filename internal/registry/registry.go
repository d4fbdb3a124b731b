package registry

import (
	"sync"

	"CryptoBuddy/internal/model"
)

// Registry owns the set of pending alerts. It is shared between the
// scheduled check cycle and the command handler, so every operation
// takes the lock.
type Registry struct {
	mu      sync.Mutex
	alerts  []*model.Alert
	symbols map[string]struct{}
}

// NewRegistry creates a Registry restricted to the given symbol set.
func NewRegistry(symbols []string) *Registry {
	set := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		set[s] = struct{}{}
	}
	return &Registry{symbols: set}
}

// Knows reports whether symbol belongs to the configured set.
func (r *Registry) Knows(symbol string) bool {
	_, ok := r.symbols[symbol]
	return ok
}

// Add appends the alert and returns true if it is well formed and its
// symbol belongs to the configured set; otherwise it returns false and
// leaves the registry untouched. Duplicate alerts are allowed and are
// tracked as independent entries.
func (r *Registry) Add(a *model.Alert) bool {
	if a == nil || !a.Direction.Valid() || a.Threshold.Sign() <= 0 {
		return false
	}
	if !r.Knows(a.Symbol) {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, a)
	return true
}

// Remove deletes the first entry identical to a. Removing an alert that
// is no longer present is a silent no-op.
func (r *Registry) Remove(a *model.Alert) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cur := range r.alerts {
		if cur == a {
			r.alerts = append(r.alerts[:i], r.alerts[i+1:]...)
			return
		}
	}
}

// List returns a snapshot of the current entries. The returned slice is
// a copy; the alerts themselves are immutable.
func (r *Registry) List() []*model.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Alert, len(r.alerts))
	copy(out, r.alerts)
	return out
}

// Len returns the number of pending alerts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.alerts)
}
