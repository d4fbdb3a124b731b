package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction tells which way a price must cross the threshold.
type Direction int

const (
	DirectionAbove Direction = iota
	DirectionBelow
)

// ParseDirection accepts "above" or "below" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "above":
		return DirectionAbove, nil
	case "below":
		return DirectionBelow, nil
	default:
		return 0, fmt.Errorf("invalid direction %q", s)
	}
}

func (d Direction) String() string {
	switch d {
	case DirectionAbove:
		return "above"
	case DirectionBelow:
		return "below"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the defined directions.
func (d Direction) Valid() bool {
	return d == DirectionAbove || d == DirectionBelow
}

// Alert is a user-registered price threshold, pending until it fires.
// Alerts are never mutated after creation.
type Alert struct {
	ID        uuid.UUID
	Symbol    string
	Direction Direction
	Threshold decimal.Decimal
	CreatedAt time.Time
}

// NewAlert builds a validated alert. The threshold must be a positive
// decimal and the direction one of the defined values.
func NewAlert(symbol string, dir Direction, threshold decimal.Decimal) (*Alert, error) {
	if symbol == "" {
		return nil, fmt.Errorf("empty symbol")
	}
	if !dir.Valid() {
		return nil, fmt.Errorf("invalid direction %d", dir)
	}
	if threshold.Sign() <= 0 {
		return nil, fmt.Errorf("threshold must be positive, got %s", threshold)
	}
	return &Alert{
		ID:        uuid.New(),
		Symbol:    symbol,
		Direction: dir,
		Threshold: threshold,
		CreatedAt: time.Now(),
	}, nil
}

// Crossed reports whether price satisfies the alert's predicate.
// Equality counts as a crossing in both directions.
func (a *Alert) Crossed(price decimal.Decimal) bool {
	if a.Direction == DirectionAbove {
		return price.GreaterThanOrEqual(a.Threshold)
	}
	return price.LessThanOrEqual(a.Threshold)
}

func (a *Alert) String() string {
	return fmt.Sprintf("%s %s $%s", a.Symbol, a.Direction, a.Threshold)
}
