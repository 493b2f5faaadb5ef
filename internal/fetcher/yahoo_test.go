package fetcher

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

const chartBody = `{"chart":{"result":[{"indicators":{"quote":[{"close":[100.0,null,105.0,110.0]}]}}],"error":null}}`

func chartServer(t *testing.T, status int, body string) (*httptest.Server, *int) {
	t.Helper()
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if got := r.URL.Query().Get("range"); got != "2y" {
			t.Errorf("expected range=2y, got %q", got)
		}
		if got := r.URL.Query().Get("interval"); got != "1d" {
			t.Errorf("expected interval=1d, got %q", got)
		}
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestYahooFetch_DecodesNullableCloses(t *testing.T) {
	srv, _ := chartServer(t, http.StatusOK, chartBody)
	f := NewYahooFetcher("", nil)
	f.BaseURL = srv.URL

	series, err := f.Fetch("SPY", "2y", "1d")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(series.Closes) != 4 {
		t.Fatalf("expected 4 closes, got %d", len(series.Closes))
	}
	if series.Closes[1] != nil {
		t.Error("expected null close preserved as nil")
	}
	if series.Closes[3] == nil || *series.Closes[3] != 110.0 {
		t.Errorf("unexpected last close: %v", series.Closes[3])
	}
	if series.Source != "Yahoo Finance (chart)" {
		t.Errorf("unexpected source label %q", series.Source)
	}
	if series.FetchedAt.IsZero() {
		t.Error("expected FetchedAt set")
	}
}

func TestYahooFetch_StatusErrorIsFetchError(t *testing.T) {
	srv, _ := chartServer(t, http.StatusTooManyRequests, "rate limited")
	f := NewYahooFetcher("", nil)
	f.BaseURL = srv.URL

	_, err := f.Fetch("SPY", "2y", "1d")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.Symbol != "SPY" {
		t.Errorf("expected symbol on error, got %q", fe.Symbol)
	}
}

func TestYahooFetch_MissingCloseIsDataFormatError(t *testing.T) {
	bodies := []string{
		`{"chart":{"result":[],"error":null}}`,
		`{"chart":{"result":[{"indicators":{"quote":[]}}],"error":null}}`,
		`not json at all`,
	}
	for _, body := range bodies {
		srv, _ := chartServer(t, http.StatusOK, body)
		f := NewYahooFetcher("", nil)
		f.BaseURL = srv.URL

		_, err := f.Fetch("SPY", "2y", "1d")
		var dfe *DataFormatError
		if !errors.As(err, &dfe) {
			t.Errorf("body %q: expected DataFormatError, got %v", body, err)
		}
	}
}

func TestYahooFetch_ServesFromFreshCache(t *testing.T) {
	srv, hits := chartServer(t, http.StatusOK, chartBody)
	f := NewYahooFetcher("", NewCache(t.TempDir(), time.Hour))
	f.BaseURL = srv.URL

	if _, err := f.Fetch("SPY", "2y", "1d"); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := f.Fetch("SPY", "2y", "1d"); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if *hits != 1 {
		t.Errorf("expected cache hit on second fetch, server saw %d requests", *hits)
	}
}

func TestYahooFetch_ExpiredCacheRefetches(t *testing.T) {
	srv, hits := chartServer(t, http.StatusOK, chartBody)
	cache := NewCache(t.TempDir(), time.Hour)
	f := NewYahooFetcher("", cache)
	f.BaseURL = srv.URL

	if _, err := f.Fetch("SPY", "2y", "1d"); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	// age the cache file past the freshness threshold
	p := cache.path("SPY", "2y", "1d")
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(p, old, old); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Fetch("SPY", "2y", "1d"); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if *hits != 2 {
		t.Errorf("expected refetch after expiry, server saw %d requests", *hits)
	}
}

func TestCachePath_SanitizesIndexSymbols(t *testing.T) {
	c := NewCache("cache", time.Hour)
	p := c.path("^GSPC", "2y", "1d")
	want := "_GSPC_2y_1d.json"
	if got := p[len(p)-len(want):]; got != want {
		t.Errorf("expected %q suffix, got %q", want, got)
	}
}
