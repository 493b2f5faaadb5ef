package fetcher

import (
	"errors"
	"time"

	"marketdash/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series map[string][]*float64
	Errs   map[string]error
	Calls  []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) Fetch(symbol, _, _ string) (*model.PriceSeries, error) {
	m.Calls = append(m.Calls, symbol)
	if err := m.Errs[symbol]; err != nil {
		return nil, err
	}
	closes, ok := m.Series[symbol]
	if !ok {
		return nil, &FetchError{Symbol: symbol, Err: errors.New("no mock data")}
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Closes:    closes,
		Source:    m.Name(),
		FetchedAt: time.Now(),
	}, nil
}
