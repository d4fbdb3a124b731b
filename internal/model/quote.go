package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote is one observed price for a symbol. Quotes are produced
// fresh each check cycle and never retained.
type PriceQuote struct {
	Symbol string
	Price  decimal.Decimal
	At     time.Time
}
