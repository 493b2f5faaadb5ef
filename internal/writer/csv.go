package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"marketdash/internal/model"
)

// CSVWriter rewrites a flat CSV dashboard from scratch on every run. The
// file is written to a temp file in the destination directory and swapped
// into place, so readers never observe a partial file.
type CSVWriter struct {
	Path string
}

var csvHeader = []string{"Ticker", "Last", "Ret3M", "Ret6M", "RS6M", "UpdatedAt"}

func (w *CSVWriter) Dest() string { return w.Path }

// Write emits a header plus exactly one row per ticker. Failed tickers keep
// their row with empty numeric fields rather than being omitted.
func (w *CSVWriter) Write(rows []model.DashboardRow) error {
	dir := filepath.Dir(w.Path)
	tmp, err := os.CreateTemp(dir, ".marketdash-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	cw := csv.NewWriter(tmp)
	if err := cw.Write(csvHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.Ticker,
			formatFloat(r.Last),
			formatFloat(r.Ret3M),
			formatFloat(r.Ret6M),
			formatFloat(r.RS6M),
			r.UpdatedAt.Format(timeLayout),
		}
		if err := cw.Write(rec); err != nil {
			tmp.Close()
			return fmt.Errorf("write row %s: %w", r.Ticker, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), w.Path); err != nil {
		return fmt.Errorf("replace %s: %w", w.Path, err)
	}
	return nil
}
