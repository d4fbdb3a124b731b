package recorder

import "time"

// FiredAlert records one delivered (or attempted) crossing notification.
type FiredAlert struct {
	AlertID   string
	Symbol    string
	Direction string
	Threshold string
	Price     string
}

// CycleEvent records one completed check cycle.
type CycleEvent struct {
	Quotes   int // quotes returned by the fetch
	Pending  int // alerts still pending after the cycle
	Fired    int
	Duration time.Duration
}

// Recorder persists an audit trail of fired alerts and check cycles.
// Pending alerts are never persisted; the registry is volatile.
type Recorder interface {
	RecordFired(evt *FiredAlert) error
	RecordCycle(evt *CycleEvent) error
	Close() error
}
