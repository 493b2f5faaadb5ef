package model

import "time"

// TickerSpec identifies one instrument in the dashboard universe.
type TickerSpec struct {
	Symbol   string `yaml:"symbol"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

// PriceSeries holds a chronological daily close series for one ticker.
// Closes may contain nil entries where the upstream reported no trade;
// trading-day lookbacks are counted over the non-nil entries only.
type PriceSeries struct {
	Symbol    string
	Closes    []*float64
	Source    string
	FetchedAt time.Time
}

// ReturnSet holds the latest close and the trailing-period returns derived
// from one price series. A nil field means the return is not computable
// (missing price or too little history).
type ReturnSet struct {
	Last   *float64
	Ret1M  *float64
	Ret3M  *float64
	Ret6M  *float64
	Ret12M *float64
}

// DashboardRow is one output record per ticker. Rows are keyed by Ticker
// when merged into an existing store. Err is set when the ticker's fetch
// or computation failed; all numeric fields are nil in that case.
type DashboardRow struct {
	Ticker    string
	Name      string
	Category  string
	Last      *float64
	Ret1M     *float64
	Ret3M     *float64
	Ret6M     *float64
	Ret12M    *float64
	RS3M      *float64
	RS6M      *float64
	RS12M     *float64
	Source    string
	FetchedAt time.Time
	UpdatedAt time.Time
	Err       error
}
