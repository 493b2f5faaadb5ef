package recorder

import "marketdash/internal/model"

// RunRecord summarizes one completed dashboard run.
type RunRecord struct {
	Source    string
	Benchmark string
	Rows      []model.DashboardRow
}

// Recorder persists run history for later review.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
