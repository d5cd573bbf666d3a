package collector

import (
	"fmt"
	"sort"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"MarketHeatmap/internal/model"
)

// AlpacaFetcher implements Fetcher using the Alpaca market-data API.
type AlpacaFetcher struct {
	client *marketdata.Client
}

// NewAlpacaFetcher creates a fetcher configured with the given Alpaca credentials.
func NewAlpacaFetcher(apiKey, apiSecret, dataURL string) *AlpacaFetcher {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}
	return &AlpacaFetcher{client: marketdata.NewClient(opts)}
}

func (f *AlpacaFetcher) Name() string { return "alpaca" }

// FetchCloses fetches daily bars for all symbols in a single multi-bar call
// and keeps only the closes.
func (f *AlpacaFetcher) FetchCloses(symbols []string, days int) (map[string][]model.Close, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	multiBars, err := f.client.GetMultiBars(symbols, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     start,
		End:       end,
	})
	if err != nil {
		return nil, fmt.Errorf("GetMultiBars: %w", err)
	}

	out := make(map[string][]model.Close, len(multiBars))
	for symbol, bars := range multiBars {
		series := make([]model.Close, 0, len(bars))
		for _, b := range bars {
			series = append(series, model.Close{Time: b.Timestamp, Price: b.Close})
		}
		sort.Slice(series, func(i, j int) bool { return series[i].Time.Before(series[j].Time) })
		out[symbol] = series
	}
	return out, nil
}
