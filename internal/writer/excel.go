package writer

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"marketdash/internal/model"
)

// DefaultSheet is the sheet the dashboard template keeps its table on.
const DefaultSheet = "Data"

// ExcelWriter merges rows into an existing workbook sheet keyed by the
// ticker in column A. Existing rows are updated in place (matching is
// trimmed and case-insensitive); unmatched tickers are appended. Column
// layout is a fixed contract: ticker, name, category, last, four returns,
// three relative-strength values, source label, fetch timestamp, run
// timestamp, starting at column A.
type ExcelWriter struct {
	Path  string
	Sheet string
}

func (w *ExcelWriter) sheet() string {
	if w.Sheet != "" {
		return w.Sheet
	}
	return DefaultSheet
}

func (w *ExcelWriter) Dest() string { return w.Path }

func (w *ExcelWriter) Write(rows []model.DashboardRow) error {
	f, err := excelize.OpenFile(w.Path)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := w.sheet()
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return &SchemaError{Path: w.Path, Reason: fmt.Sprintf("workbook must contain a sheet named %q", sheet)}
	}

	existing, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	// Map existing tickers (col A, below the header) to row numbers.
	tickerToRow := make(map[string]int)
	for i := 1; i < len(existing); i++ {
		if len(existing[i]) == 0 {
			continue
		}
		if t := strings.ToUpper(strings.TrimSpace(existing[i][0])); t != "" {
			tickerToRow[t] = i + 1
		}
	}

	next := len(existing) + 1
	for _, row := range rows {
		t := strings.ToUpper(strings.TrimSpace(row.Ticker))
		r, ok := tickerToRow[t]
		if !ok {
			r = next
			next++
			tickerToRow[t] = r
			if err := w.setCell(f, 1, r, t); err != nil {
				return err
			}
		}
		cells := []interface{}{
			row.Name,
			row.Category,
			floatCell(row.Last),
			floatCell(row.Ret1M),
			floatCell(row.Ret3M),
			floatCell(row.Ret6M),
			floatCell(row.Ret12M),
			floatCell(row.RS3M),
			floatCell(row.RS6M),
			floatCell(row.RS12M),
			row.Source,
			timeCell(row.FetchedAt),
			timeCell(row.UpdatedAt),
		}
		for i, v := range cells {
			if err := w.setCell(f, i+2, r, v); err != nil {
				return err
			}
		}
	}

	// Single save: write the whole workbook to a temp file, then swap it in.
	tmp := w.Path + ".tmp.xlsx"
	if err := f.SaveAs(tmp); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	if err := os.Rename(tmp, w.Path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", w.Path, err)
	}
	return nil
}

func (w *ExcelWriter) setCell(f *excelize.File, col, row int, v interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(w.sheet(), cell, v); err != nil {
		return fmt.Errorf("set %s: %w", cell, err)
	}
	return nil
}

func floatCell(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func timeCell(t time.Time) interface{} {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}
