package engine

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"CryptoBuddy/internal/collector"
	"CryptoBuddy/internal/model"
	"CryptoBuddy/internal/recorder"
	"CryptoBuddy/internal/registry"
)

// fakeNotifier records crossing notifications and optionally fails.
type fakeNotifier struct {
	fired []firedEvent
	err   error
}

type firedEvent struct {
	quote model.PriceQuote
	alert *model.Alert
}

func (f *fakeNotifier) NotifyCrossing(q model.PriceQuote, a *model.Alert) error {
	f.fired = append(f.fired, firedEvent{quote: q, alert: a})
	return f.err
}

func quote(symbol, price string) model.PriceQuote {
	return model.PriceQuote{Symbol: symbol, Price: decimal.RequireFromString(price)}
}

func mustAlert(t *testing.T, symbol string, dir model.Direction, threshold string) *model.Alert {
	t.Helper()
	a, err := model.NewAlert(symbol, dir, decimal.RequireFromString(threshold))
	if err != nil {
		t.Fatalf("new alert: %v", err)
	}
	return a
}

func newTestEngine(symbols []string, fetcher collector.Fetcher) (*Engine, *registry.Registry, *fakeNotifier) {
	reg := registry.NewRegistry(symbols)
	fn := &fakeNotifier{}
	eng := NewEngine(fetcher, reg, fn, recorder.NewNoopRecorder(), symbols)
	return eng, reg, fn
}

func TestCheckCycle_BoundaryInclusive(t *testing.T) {
	tests := []struct {
		name      string
		direction model.Direction
		threshold string
		price     string
		fires     bool
	}{
		{"above, price below threshold", model.DirectionAbove, "100", "99.99", false},
		{"above, price at threshold", model.DirectionAbove, "100", "100", true},
		{"above, price over threshold", model.DirectionAbove, "100", "100.01", true},
		{"below, price over threshold", model.DirectionBelow, "100", "100.01", false},
		{"below, price at threshold", model.DirectionBelow, "100", "100", true},
		{"below, price under threshold", model.DirectionBelow, "100", "99.99", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &collector.MockFetcher{Quotes: []model.PriceQuote{quote("XBTUSD", tt.price)}}
			eng, reg, fn := newTestEngine([]string{"XBTUSD"}, fetcher)
			a := mustAlert(t, "XBTUSD", tt.direction, tt.threshold)
			reg.Add(a)

			eng.CheckCycle()

			if fired := len(fn.fired) == 1; fired != tt.fires {
				t.Errorf("fired=%v, want %v", fired, tt.fires)
			}
			if pending := reg.Len() == 1; pending == tt.fires {
				t.Errorf("pending=%v, want %v", pending, !tt.fires)
			}
		})
	}
}

func TestCheckCycle_FiresAtMostOnce(t *testing.T) {
	fetcher := &collector.MockFetcher{Quotes: []model.PriceQuote{quote("XBTUSD", "101")}}
	eng, reg, fn := newTestEngine([]string{"XBTUSD"}, fetcher)
	reg.Add(mustAlert(t, "XBTUSD", model.DirectionAbove, "100"))

	eng.CheckCycle()
	eng.CheckCycle() // same matching price again

	if len(fn.fired) != 1 {
		t.Errorf("expected exactly 1 notification, got %d", len(fn.fired))
	}
	if reg.Len() != 0 {
		t.Errorf("fired alert must not reappear, got %d pending", reg.Len())
	}
}

func TestCheckCycle_MultipleQuotesSameSymbol(t *testing.T) {
	// The upstream returns many buckets per symbol; the first matching
	// quote wins and removes the alert before later quotes see it.
	fetcher := &collector.MockFetcher{Quotes: []model.PriceQuote{
		quote("XBTUSD", "101"),
		quote("XBTUSD", "102"),
		quote("XBTUSD", "103"),
	}}
	eng, reg, fn := newTestEngine([]string{"XBTUSD"}, fetcher)
	reg.Add(mustAlert(t, "XBTUSD", model.DirectionAbove, "100"))

	eng.CheckCycle()

	if len(fn.fired) != 1 {
		t.Fatalf("expected 1 notification across buckets, got %d", len(fn.fired))
	}
	if want := decimal.RequireFromString("101"); !fn.fired[0].quote.Price.Equal(want) {
		t.Errorf("expected first matching quote to fire, got %s", fn.fired[0].quote.Price)
	}
}

func TestCheckCycle_FetchFailure(t *testing.T) {
	fetcher := &collector.MockFetcher{Err: errors.New("connection refused")}
	eng, reg, fn := newTestEngine([]string{"XBTUSD"}, fetcher)
	reg.Add(mustAlert(t, "XBTUSD", model.DirectionAbove, "100"))

	eng.CheckCycle()

	if len(fn.fired) != 0 {
		t.Errorf("expected zero notifications on fetch failure, got %d", len(fn.fired))
	}
	if reg.Len() != 1 {
		t.Errorf("registry must be unchanged on fetch failure, got %d pending", reg.Len())
	}
}

func TestCheckCycle_NotifyFailureStillRemoves(t *testing.T) {
	fetcher := &collector.MockFetcher{Quotes: []model.PriceQuote{quote("XBTUSD", "101")}}
	eng, reg, fn := newTestEngine([]string{"XBTUSD"}, fetcher)
	fn.err = errors.New("chat unreachable")
	reg.Add(mustAlert(t, "XBTUSD", model.DirectionAbove, "100"))

	eng.CheckCycle()

	if reg.Len() != 0 {
		t.Error("alert must be removed even when delivery fails")
	}

	// And it must not fire again later.
	eng.CheckCycle()
	if len(fn.fired) != 1 {
		t.Errorf("expected 1 delivery attempt total, got %d", len(fn.fired))
	}
}

func TestCheckCycle_EndToEnd(t *testing.T) {
	symbols := []string{"XBTUSD", "ETHUSD"}
	fetcher := &collector.MockFetcher{Quotes: []model.PriceQuote{
		quote("XBTUSD", "99"),
		quote("ETHUSD", "50"),
	}}
	eng, reg, fn := newTestEngine(symbols, fetcher)
	a := mustAlert(t, "XBTUSD", model.DirectionAbove, "100")
	reg.Add(a)

	eng.CheckCycle()
	if len(fn.fired) != 0 {
		t.Fatalf("expected no notification below threshold, got %d", len(fn.fired))
	}
	if reg.Len() != 1 {
		t.Fatal("alert must still be pending")
	}

	fetcher.Quotes = []model.PriceQuote{quote("XBTUSD", "101")}
	eng.CheckCycle()
	if len(fn.fired) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(fn.fired))
	}
	if fn.fired[0].alert != a {
		t.Error("wrong alert fired")
	}
	if len(reg.List()) != 0 {
		t.Error("expected empty registry after firing")
	}
}

func TestCheckCycle_OppositeDirectionsIndependent(t *testing.T) {
	fetcher := &collector.MockFetcher{Quotes: []model.PriceQuote{quote("XBTUSD", "5")}}
	eng, reg, fn := newTestEngine([]string{"XBTUSD"}, fetcher)
	above := mustAlert(t, "XBTUSD", model.DirectionAbove, "100")
	below := mustAlert(t, "XBTUSD", model.DirectionBelow, "10")
	reg.Add(above)
	reg.Add(below)

	eng.CheckCycle()

	if len(fn.fired) != 1 {
		t.Fatalf("expected only the below alert to fire, got %d notifications", len(fn.fired))
	}
	if fn.fired[0].alert != below {
		t.Error("expected the below alert to fire")
	}
	pending := reg.List()
	if len(pending) != 1 || pending[0] != above {
		t.Error("expected the above alert to remain pending")
	}
}

func TestCheckCycle_BothMatchingAlertsFire(t *testing.T) {
	fetcher := &collector.MockFetcher{Quotes: []model.PriceQuote{quote("XBTUSD", "150")}}
	eng, reg, fn := newTestEngine([]string{"XBTUSD"}, fetcher)
	reg.Add(mustAlert(t, "XBTUSD", model.DirectionAbove, "100"))
	reg.Add(mustAlert(t, "XBTUSD", model.DirectionAbove, "120"))

	eng.CheckCycle()

	if len(fn.fired) != 2 {
		t.Errorf("expected both matching alerts to fire, got %d", len(fn.fired))
	}
	if reg.Len() != 0 {
		t.Errorf("expected empty registry, got %d pending", reg.Len())
	}
}
