package collector

import "CryptoBuddy/internal/model"

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Quotes []model.PriceQuote
	Err    error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchPrices(symbols []string) ([]model.PriceQuote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	watched := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		watched[s] = struct{}{}
	}
	var quotes []model.PriceQuote
	for _, q := range m.Quotes {
		if _, ok := watched[q.Symbol]; ok {
			quotes = append(quotes, q)
		}
	}
	return quotes, nil
}
