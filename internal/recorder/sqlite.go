package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder keeps every run's rows in a SQLite database so past
// dashboards stay queryable after the spreadsheet has been overwritten.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			source       TEXT,
			benchmark    TEXT,
			ticker_count INTEGER,
			failed_count INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS run_rows (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id   INTEGER NOT NULL,
			ticker   TEXT NOT NULL,
			name     TEXT,
			category TEXT,
			last     REAL,
			ret_1m   REAL,
			ret_3m   REAL,
			ret_6m   REAL,
			ret_12m  REAL,
			rs_3m    REAL,
			rs_6m    REAL,
			rs_12m   REAL,
			fetch_error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_rows_run ON run_rows(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_run_rows_ticker ON run_rows(ticker)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun appends the run and all its rows in one transaction.
func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	failed := 0
	for _, row := range rec.Rows {
		if row.Err != nil {
			failed++
		}
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO runs (timestamp, source, benchmark, ticker_count, failed_count)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), rec.Source, rec.Benchmark, len(rec.Rows), failed,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, row := range rec.Rows {
		var fetchErr sql.NullString
		if row.Err != nil {
			fetchErr = sql.NullString{String: row.Err.Error(), Valid: true}
		}
		if _, err := tx.Exec(`INSERT INTO run_rows
			(run_id, ticker, name, category, last, ret_1m, ret_3m, ret_6m, ret_12m, rs_3m, rs_6m, rs_12m, fetch_error)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			runID, row.Ticker, row.Name, row.Category,
			row.Last, row.Ret1M, row.Ret3M, row.Ret6M, row.Ret12M,
			row.RS3M, row.RS6M, row.RS12M, fetchErr,
		); err != nil {
			return fmt.Errorf("insert row %s: %w", row.Ticker, err)
		}
	}

	return tx.Commit()
}

// Close closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
