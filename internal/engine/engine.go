package engine

import (
	"log"
	"time"

	"CryptoBuddy/internal/collector"
	"CryptoBuddy/internal/model"
	"CryptoBuddy/internal/recorder"
	"CryptoBuddy/internal/registry"
)

// Notifier delivers a crossing notification to the destination channel.
type Notifier interface {
	NotifyCrossing(q model.PriceQuote, a *model.Alert) error
}

// Engine runs the check cycle: fetch prices, match pending alerts,
// notify and remove the ones that crossed.
type Engine struct {
	Fetcher  collector.Fetcher
	Registry *registry.Registry
	Notifier Notifier
	Recorder recorder.Recorder
	Symbols  []string
}

// NewEngine creates a new Engine.
func NewEngine(f collector.Fetcher, reg *registry.Registry, n Notifier, rec recorder.Recorder, symbols []string) *Engine {
	return &Engine{
		Fetcher:  f,
		Registry: reg,
		Notifier: n,
		Recorder: rec,
		Symbols:  symbols,
	}
}

// CheckCycle performs one fetch-match-fire pass. A failed fetch skips the
// whole cycle; the next scheduled cycle retries naturally. Each fired
// alert is removed immediately, so a later quote for the same symbol in
// the same cycle cannot fire it again.
func (e *Engine) CheckCycle() {
	start := time.Now()

	quotes, err := e.Fetcher.FetchPrices(e.Symbols)
	if err != nil {
		log.Printf("[WARN] price fetch failed, skipping cycle: %v", err)
		return
	}

	fired := 0
	for _, q := range quotes {
		// Re-read the registry per quote so removals from earlier
		// quotes are visible.
		for _, a := range e.Registry.List() {
			if a.Symbol != q.Symbol || !a.Crossed(q.Price) {
				continue
			}

			// Attempt notify, unconditionally remove. A transient
			// delivery failure does not re-queue the alert.
			if err := e.Notifier.NotifyCrossing(q, a); err != nil {
				log.Printf("[ERROR] notify crossing for %s: %v", a, err)
			}
			e.Registry.Remove(a)
			fired++

			if err := e.Recorder.RecordFired(&recorder.FiredAlert{
				AlertID:   a.ID.String(),
				Symbol:    a.Symbol,
				Direction: a.Direction.String(),
				Threshold: a.Threshold.String(),
				Price:     q.Price.String(),
			}); err != nil {
				log.Printf("[ERROR] record fired alert: %v", err)
			}
		}
	}

	if err := e.Recorder.RecordCycle(&recorder.CycleEvent{
		Quotes:   len(quotes),
		Pending:  e.Registry.Len(),
		Fired:    fired,
		Duration: time.Since(start),
	}); err != nil {
		log.Printf("[ERROR] record check cycle: %v", err)
	}
}
