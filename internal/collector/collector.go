package collector

import (
	"log"
	"math"

	"MarketHeatmap/internal/calculator"
	"MarketHeatmap/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series map[string][]model.Close
	Err    error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchCloses(_ []string, _ int) (map[string][]model.Close, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Series, nil
}

// Collector resolves roster symbols to price observations via one batched fetch.
type Collector struct {
	Fetcher    Fetcher
	WindowDays int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, windowDays int) *Collector {
	return &Collector{Fetcher: fetcher, WindowDays: windowDays}
}

// Resolve fetches the trailing close window for every roster symbol and
// computes each symbol's change from the previous close. A symbol with
// missing or short data degrades to an invalid Observation; it never fails
// the rest of the batch. A failed batch call degrades every symbol and is
// logged, it does not abort the run.
func (c *Collector) Resolve(refs []model.StockRef) map[string]model.Observation {
	codes := make([]string, len(refs))
	for i, r := range refs {
		codes[i] = r.Code
	}

	series, err := c.Fetcher.FetchCloses(codes, c.WindowDays)
	if err != nil {
		log.Printf("[WARN] batch fetch failed, all symbols degrade to N/A: %v", err)
		series = nil
	}

	obs := make(map[string]model.Observation, len(refs))
	resolved := 0
	for _, ref := range refs {
		o := model.Observation{Code: ref.Code}
		closes := make([]float64, 0, len(series[ref.Code]))
		for _, cl := range series[ref.Code] {
			if math.IsNaN(cl.Price) || cl.Price <= 0 {
				continue
			}
			closes = append(closes, cl.Price)
		}
		if last, pct, err := calculator.LastChange(closes); err == nil {
			o.Price = last
			o.ChangePct = pct
			o.Valid = true
			resolved++
		}
		obs[ref.Code] = o
	}
	log.Printf("[INFO] resolved %d/%d symbols", resolved, len(refs))
	return obs
}
