package dashboard

import (
	"errors"
	"math"
	"testing"

	"marketdash/internal/fetcher"
	"marketdash/internal/model"
)

// ramp builds n valid closes ending at last, stepping by 1.
func ramp(last float64, n int) []*float64 {
	closes := make([]*float64, n)
	for i := range closes {
		v := last - float64(n-1-i)
		closes[i] = &v
	}
	return closes
}

func testUniverse() []model.TickerSpec {
	return []model.TickerSpec{
		{Symbol: "SPY", Name: "S&P 500 (SPY)", Category: "INDEX"},
		{Symbol: "QQQ", Name: "Nasdaq 100 (QQQ)", Category: "INDEX"},
		{Symbol: "GLD", Name: "Gold (GLD)", Category: "RISK"},
	}
}

func TestRun_ComputesRelativeStrength(t *testing.T) {
	mock := &fetcher.MockFetcher{
		Series: map[string][]*float64{
			"SPY": ramp(400, 300),
			"QQQ": ramp(500, 300),
			"GLD": ramp(200, 300),
		},
	}
	u := NewUpdater(mock, Options{Benchmark: "SPY", Tickers: testUniverse()})

	rows, err := u.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	// SPY measured against itself has zero relative strength
	spy := rows[0]
	if spy.RS6M == nil || math.Abs(*spy.RS6M) > 1e-12 {
		t.Errorf("expected zero RS for benchmark vs itself, got %v", spy.RS6M)
	}

	// QQQ: ret_6m = 500/374-1, SPY ret_6m = 400/274-1
	qqq := rows[1]
	want := (500.0/374.0 - 1) - (400.0/274.0 - 1)
	if qqq.RS6M == nil || math.Abs(*qqq.RS6M-want) > 1e-12 {
		t.Errorf("expected RS6M %v, got %v", want, qqq.RS6M)
	}
	if qqq.Source != "mock" {
		t.Errorf("expected source label from fetcher, got %q", qqq.Source)
	}
	if qqq.FetchedAt.IsZero() || qqq.UpdatedAt.IsZero() {
		t.Error("expected timestamps on successful row")
	}
}

func TestRun_BenchmarkFailureIsFatal(t *testing.T) {
	mock := &fetcher.MockFetcher{
		Series: map[string][]*float64{"QQQ": ramp(500, 300)},
		Errs:   map[string]error{"SPY": errors.New("rate limited")},
	}
	u := NewUpdater(mock, Options{Benchmark: "SPY", Tickers: testUniverse()})

	rows, err := u.Run()
	if err == nil {
		t.Fatal("expected error when benchmark fetch fails")
	}
	if rows != nil {
		t.Errorf("expected no rows on benchmark failure, got %d", len(rows))
	}
	// only the benchmark should have been requested
	if len(mock.Calls) != 1 || mock.Calls[0] != "SPY" {
		t.Errorf("expected single SPY call, got %v", mock.Calls)
	}
}

func TestRun_TickerFailureDegradesRow(t *testing.T) {
	fetchErr := &fetcher.FetchError{Symbol: "QQQ", Err: errors.New("timeout")}
	mock := &fetcher.MockFetcher{
		Series: map[string][]*float64{
			"SPY": ramp(400, 300),
			"GLD": ramp(200, 300),
		},
		Errs: map[string]error{"QQQ": fetchErr},
	}
	u := NewUpdater(mock, Options{Benchmark: "SPY", Tickers: testUniverse()})

	rows, err := u.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected a row per ticker regardless of failures, got %d", len(rows))
	}

	qqq := rows[1]
	if qqq.Err == nil {
		t.Fatal("expected Err set on failed row")
	}
	var fe *fetcher.FetchError
	if !errors.As(qqq.Err, &fe) {
		t.Errorf("expected FetchError, got %T", qqq.Err)
	}
	if qqq.Last != nil || qqq.Ret3M != nil || qqq.RS6M != nil {
		t.Error("expected all numeric fields absent on failed row")
	}
	if qqq.Ticker != "QQQ" || qqq.Name == "" || qqq.Category == "" {
		t.Error("expected identity fields kept on failed row")
	}

	// the ticker after the failure still computes
	gld := rows[2]
	if gld.Err != nil || gld.Last == nil {
		t.Errorf("expected GLD row intact after QQQ failure: err=%v", gld.Err)
	}
}

func TestRun_ShortHistoryYieldsPartialRow(t *testing.T) {
	mock := &fetcher.MockFetcher{
		Series: map[string][]*float64{
			"SPY": ramp(400, 300),
			"QQQ": ramp(500, 100), // enough for 1m/3m only
			"GLD": ramp(200, 300),
		},
	}
	u := NewUpdater(mock, Options{Benchmark: "SPY", Tickers: testUniverse()})

	rows, err := u.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	qqq := rows[1]
	if qqq.Err != nil {
		t.Fatalf("short history is not a failure: %v", qqq.Err)
	}
	if qqq.Ret3M == nil || qqq.RS3M == nil {
		t.Error("expected 3m values with 100 observations")
	}
	if qqq.Ret12M != nil || qqq.RS12M != nil {
		t.Error("expected absent 12m values with 100 observations")
	}
}
