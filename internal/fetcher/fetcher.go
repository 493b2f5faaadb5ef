package fetcher

import (
	"fmt"

	"marketdash/internal/model"
)

// Fetcher defines the interface for retrieving a daily close series.
type Fetcher interface {
	Fetch(symbol, rng, interval string) (*model.PriceSeries, error)
	Name() string
}

// FetchError reports a transport failure or a non-success HTTP status.
type FetchError struct {
	Symbol string
	Err    error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.Symbol, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// DataFormatError reports a response payload that lacks the expected
// close series.
type DataFormatError struct {
	Symbol string
	Reason string
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("decode %s: %s", e.Symbol, e.Reason)
}
