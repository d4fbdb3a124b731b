package collector

import "CryptoBuddy/internal/model"

// Fetcher defines the interface for fetching current prices.
type Fetcher interface {
	// FetchPrices returns the latest quotes for the given symbols.
	// The result may contain several quotes per symbol.
	FetchPrices(symbols []string) ([]model.PriceQuote, error)
	Name() string
}
