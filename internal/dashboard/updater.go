package dashboard

import (
	"fmt"
	"log"
	"time"

	"marketdash/internal/calculator"
	"marketdash/internal/fetcher"
	"marketdash/internal/model"
)

// Options configures one dashboard run.
type Options struct {
	Benchmark    string
	Tickers      []model.TickerSpec
	Range        string
	Interval     string
	RequestDelay time.Duration
}

// Updater runs the fetch-compute pipeline over the ticker universe.
type Updater struct {
	Fetcher fetcher.Fetcher
	Opts    Options
}

// NewUpdater creates an Updater with defaulted range and interval. The 2y
// daily window holds at least 252 trading observations, enough for the
// 12-month lookback.
func NewUpdater(f fetcher.Fetcher, opts Options) *Updater {
	if opts.Range == "" {
		opts.Range = "2y"
	}
	if opts.Interval == "" {
		opts.Interval = "1d"
	}
	return &Updater{Fetcher: f, Opts: opts}
}

// Run computes one row per configured ticker, benchmark first. It fails
// only when the benchmark itself is unobtainable — relative strength is
// undefined without it. Individual ticker failures degrade that ticker's
// row to all-absent numeric fields and the batch continues.
func (u *Updater) Run() ([]model.DashboardRow, error) {
	bench, _, err := u.computeReturns(u.Opts.Benchmark)
	if err != nil {
		return nil, fmt.Errorf("benchmark %s unavailable: %w", u.Opts.Benchmark, err)
	}

	updatedAt := time.Now()
	rows := make([]model.DashboardRow, 0, len(u.Opts.Tickers))
	for _, spec := range u.Opts.Tickers {
		if u.Opts.RequestDelay > 0 {
			time.Sleep(u.Opts.RequestDelay)
		}
		rows = append(rows, u.buildRow(spec, bench, updatedAt))
	}
	return rows, nil
}

func (u *Updater) buildRow(spec model.TickerSpec, bench model.ReturnSet, updatedAt time.Time) model.DashboardRow {
	row := model.DashboardRow{
		Ticker:    spec.Symbol,
		Name:      spec.Name,
		Category:  spec.Category,
		UpdatedAt: updatedAt,
	}

	rets, fetchedAt, err := u.computeReturns(spec.Symbol)
	if err != nil {
		log.Printf("[WARN] %s: %v", spec.Symbol, err)
		row.Err = err
		return row
	}

	row.Last = rets.Last
	row.Ret1M = rets.Ret1M
	row.Ret3M = rets.Ret3M
	row.Ret6M = rets.Ret6M
	row.Ret12M = rets.Ret12M
	row.RS3M = calculator.RelativeStrength(rets.Ret3M, bench.Ret3M)
	row.RS6M = calculator.RelativeStrength(rets.Ret6M, bench.Ret6M)
	row.RS12M = calculator.RelativeStrength(rets.Ret12M, bench.Ret12M)
	row.Source = u.Fetcher.Name()
	row.FetchedAt = fetchedAt
	return row
}

func (u *Updater) computeReturns(symbol string) (model.ReturnSet, time.Time, error) {
	series, err := u.Fetcher.Fetch(symbol, u.Opts.Range, u.Opts.Interval)
	if err != nil {
		return model.ReturnSet{}, time.Time{}, err
	}
	return calculator.Returns(series), series.FetchedAt, nil
}
