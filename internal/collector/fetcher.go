package collector

import "MarketHeatmap/internal/model"

// Fetcher defines the interface for fetching market data. One call carries
// the full symbol list and a trailing window in calendar days; the result
// maps each symbol to its daily close series. Symbols the provider knows
// nothing about are simply missing from the map.
type Fetcher interface {
	FetchCloses(symbols []string, days int) (map[string][]model.Close, error)
	Name() string
}
