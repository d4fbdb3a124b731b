package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"CryptoBuddy/internal/model"
)

// BitMexFetcher implements Fetcher using the public BitMEX REST API.
// Rate limit of 150 requests per 5 minutes when not authenticated;
// one request per check cycle stays far below that.
type BitMexFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewBitMexFetcher creates a new fetcher with optional proxy support.
func NewBitMexFetcher(baseURL, proxyURL string) *BitMexFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &BitMexFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

func (f *BitMexFetcher) Name() string { return "bitmex" }

// bucket is the expected JSON shape of one bucketed-trade entry.
type bucket struct {
	Symbol    string              `json:"symbol"`
	Close     decimal.NullDecimal `json:"close"`
	Timestamp time.Time           `json:"timestamp"`
}

// FetchPrices requests the most recent 1-minute trade buckets and keeps
// the entries whose symbol is in the watched set. Every matching bucket
// becomes a quote; no deduplication per symbol.
func (f *BitMexFetcher) FetchPrices(symbols []string) ([]model.PriceQuote, error) {
	watched := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		watched[s] = struct{}{}
	}

	endpoint := fmt.Sprintf("%s/trade/bucketed?binSize=1m&partial=true&count=100&reverse=true", f.BaseURL)
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch buckets: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch buckets: status %d, body: %s", resp.StatusCode, string(body))
	}

	var buckets []bucket
	if err := json.NewDecoder(resp.Body).Decode(&buckets); err != nil {
		return nil, fmt.Errorf("decode buckets: %w", err)
	}

	quotes := make([]model.PriceQuote, 0, len(buckets))
	for _, b := range buckets {
		if _, ok := watched[b.Symbol]; !ok {
			continue
		}
		if !b.Close.Valid || b.Close.Decimal.Sign() <= 0 {
			continue // partial or empty bucket
		}
		quotes = append(quotes, model.PriceQuote{
			Symbol: b.Symbol,
			Price:  b.Close.Decimal,
			At:     b.Timestamp,
		})
	}
	return quotes, nil
}
