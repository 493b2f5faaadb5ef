package fetcher

import (
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"marketdash/internal/model"
)

// FinanceGoFetcher retrieves daily bars through the finance-go chart API.
// The library drops missing bars upstream, so the series it yields never
// contains nil closes.
type FinanceGoFetcher struct{}

// NewFinanceGoFetcher creates a finance-go backed fetcher.
func NewFinanceGoFetcher() *FinanceGoFetcher { return &FinanceGoFetcher{} }

func (f *FinanceGoFetcher) Name() string { return "finance-go (chart)" }

// Fetch returns the close series for symbol. The range token is mapped to
// a calendar start date since finance-go takes explicit bounds.
func (f *FinanceGoFetcher) Fetch(symbol, rng, interval string) (*model.PriceSeries, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -rangeDays(rng))

	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Interval: datetime.Interval(interval),
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
	})

	var closes []*float64
	for iter.Next() {
		c, _ := iter.Bar().Close.Float64()
		v := c
		closes = append(closes, &v)
	}
	if err := iter.Err(); err != nil {
		return nil, &FetchError{Symbol: symbol, Err: err}
	}
	if len(closes) == 0 {
		return nil, &DataFormatError{Symbol: symbol, Reason: "no bars returned"}
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Closes:    closes,
		Source:    f.Name(),
		FetchedAt: time.Now(),
	}, nil
}

// rangeDays maps a Yahoo-style range token to calendar days.
func rangeDays(rng string) int {
	switch rng {
	case "1mo":
		return 31
	case "3mo":
		return 93
	case "6mo":
		return 186
	case "1y":
		return 366
	case "5y":
		return 5 * 366
	default: // "2y"
		return 2 * 366
	}
}
