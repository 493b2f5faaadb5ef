package calculator

import "marketdash/internal/model"

// Trailing windows counted in valid trading observations, not calendar
// days. The drift versus calendar months is deliberate: historical
// dashboard values were computed the same way.
const (
	Lookback1M  = 21
	Lookback3M  = 63
	Lookback6M  = 126
	Lookback12M = 252
)

// LastValidClose scans backward from the most recent observation and
// returns the first non-nil close, or nil if every observation is missing.
func LastValidClose(series *model.PriceSeries) *float64 {
	for i := len(series.Closes) - 1; i >= 0; i-- {
		if c := series.Closes[i]; c != nil {
			return c
		}
	}
	return nil
}

// CloseNDaysAgo returns the close n valid trading observations before the
// last one. With n or fewer valid observations the lookback is not
// computable and nil is returned, never a clamped value.
func CloseNDaysAgo(series *model.PriceSeries, n int) *float64 {
	valid := make([]*float64, 0, len(series.Closes))
	for _, c := range series.Closes {
		if c != nil {
			valid = append(valid, c)
		}
	}
	if len(valid) <= n {
		return nil
	}
	return valid[len(valid)-(n+1)]
}

// PctReturn computes last/past - 1, or nil when either input is missing
// or past is zero.
func PctReturn(last, past *float64) *float64 {
	if last == nil || past == nil || *past == 0 {
		return nil
	}
	r := *last / *past - 1
	return &r
}

// Returns derives the latest close and the 1/3/6/12-month trailing returns
// from one price series.
func Returns(series *model.PriceSeries) model.ReturnSet {
	last := LastValidClose(series)
	return model.ReturnSet{
		Last:   last,
		Ret1M:  PctReturn(last, CloseNDaysAgo(series, Lookback1M)),
		Ret3M:  PctReturn(last, CloseNDaysAgo(series, Lookback3M)),
		Ret6M:  PctReturn(last, CloseNDaysAgo(series, Lookback6M)),
		Ret12M: PctReturn(last, CloseNDaysAgo(series, Lookback12M)),
	}
}
