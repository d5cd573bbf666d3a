package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"MarketHeatmap/internal/model"
)

// YahooFetcher implements Fetcher using the Yahoo Finance spark API, which
// accepts a comma-separated symbol list in a single request.
type YahooFetcher struct {
	Client *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooSpark is the response structure from the Yahoo Finance spark API.
type yahooSpark struct {
	Spark struct {
		Result []struct {
			Symbol   string `json:"symbol"`
			Response []struct {
				Timestamp  []int64 `json:"timestamp"`
				Indicators struct {
					Quote []struct {
						Close []*float64 `json:"close"`
					} `json:"quote"`
				} `json:"indicators"`
			} `json:"response"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"spark"`
}

// FetchCloses requests the trailing daily close window for all symbols in
// one batched spark call.
func (f *YahooFetcher) FetchCloses(symbols []string, days int) (map[string][]model.Close, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/spark?symbols=%s&interval=1d&range=%dd",
		url.QueryEscape(strings.Join(symbols, ",")), days)

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var spark yahooSpark
	if err := json.Unmarshal(body, &spark); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if spark.Spark.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", spark.Spark.Error.Description)
	}

	out := make(map[string][]model.Close, len(spark.Spark.Result))
	for _, res := range spark.Spark.Result {
		if len(res.Response) == 0 {
			continue
		}
		r := res.Response[0]
		if len(r.Indicators.Quote) == 0 {
			continue
		}
		closes := r.Indicators.Quote[0].Close
		series := make([]model.Close, 0, len(r.Timestamp))
		for i, ts := range r.Timestamp {
			if i >= len(closes) || closes[i] == nil {
				continue // null entries (holidays etc.)
			}
			series = append(series, model.Close{Time: time.Unix(ts, 0), Price: *closes[i]})
		}
		sort.Slice(series, func(i, j int) bool { return series[i].Time.Before(series[j].Time) })
		out[res.Symbol] = series
	}
	return out, nil
}
