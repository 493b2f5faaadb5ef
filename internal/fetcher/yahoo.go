package fetcher

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"marketdash/internal/model"
)

const defaultChartURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// YahooFetcher retrieves close series from the Yahoo Finance chart API.
// With a non-nil Cache, raw responses are served from disk while fresh.
type YahooFetcher struct {
	Client  *http.Client
	BaseURL string
	Cache   *Cache
}

// NewYahooFetcher creates a Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string, cache *Cache) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   20 * time.Second,
			Transport: transport,
		},
		BaseURL: defaultChartURL,
		Cache:   cache,
	}
}

func (f *YahooFetcher) Name() string { return "Yahoo Finance (chart)" }

// yahooChart is the response structure from the Yahoo Finance chart API.
// Close entries decode to nil where the upstream reports null.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Fetch returns the close series for symbol over the given range and
// interval, reusing a fresh cached response when available.
func (f *YahooFetcher) Fetch(symbol, rng, interval string) (*model.PriceSeries, error) {
	var raw []byte
	if f.Cache != nil {
		if data, ok := f.Cache.Load(symbol, rng, interval); ok {
			raw = data
		}
	}
	if raw == nil {
		data, err := f.download(symbol, rng, interval)
		if err != nil {
			return nil, err
		}
		raw = data
		if f.Cache != nil {
			if err := f.Cache.Store(symbol, rng, interval, raw); err != nil {
				log.Printf("[WARN] cache store %s: %v", symbol, err)
			}
		}
	}

	closes, err := decodeChart(symbol, raw)
	if err != nil {
		return nil, err
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Closes:    closes,
		Source:    f.Name(),
		FetchedAt: time.Now(),
	}, nil
}

func (f *YahooFetcher) download(symbol, rng, interval string) ([]byte, error) {
	q := url.Values{}
	q.Set("range", rng)
	q.Set("interval", interval)
	q.Set("includePrePost", "false")
	q.Set("events", "div,splits")
	u := fmt.Sprintf("%s/%s?%s", f.BaseURL, url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Err: err}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json,text/plain,*/*")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Symbol: symbol, Err: fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))}
	}
	return body, nil
}

func decodeChart(symbol string, raw []byte) ([]*float64, error) {
	var chart yahooChart
	if err := json.Unmarshal(raw, &chart); err != nil {
		return nil, &DataFormatError{Symbol: symbol, Reason: err.Error()}
	}
	if chart.Chart.Error != nil {
		return nil, &FetchError{Symbol: symbol, Err: fmt.Errorf("api error: %s", chart.Chart.Error.Description)}
	}
	if len(chart.Chart.Result) == 0 {
		return nil, &DataFormatError{Symbol: symbol, Reason: "no chart result"}
	}
	quotes := chart.Chart.Result[0].Indicators.Quote
	if len(quotes) == 0 || len(quotes[0].Close) == 0 {
		return nil, &DataFormatError{Symbol: symbol, Reason: "close series missing"}
	}
	return quotes[0].Close, nil
}
