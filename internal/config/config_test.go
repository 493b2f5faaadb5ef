package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Benchmark != "SPY" {
		t.Errorf("expected default benchmark SPY, got %q", cfg.Benchmark)
	}
	if len(cfg.Tickers) != 17 {
		t.Errorf("expected default 17-ticker universe, got %d", len(cfg.Tickers))
	}
	if cfg.DataSource.Range != "2y" || cfg.DataSource.Interval != "1d" {
		t.Errorf("unexpected data source defaults: %+v", cfg.DataSource)
	}
	if cfg.Cache.MaxAgeMinutes != 60 || cfg.RequestDelayMS != 200 {
		t.Errorf("unexpected cache/delay defaults: %d, %d", cfg.Cache.MaxAgeMinutes, cfg.RequestDelayMS)
	}
	if cfg.Output.Sheet != "Data" {
		t.Errorf("expected default sheet Data, got %q", cfg.Output.Sheet)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
benchmark: QQQ
tickers:
  - {symbol: XLK, name: "Technology (XLK)", category: SECTOR}
output:
  csv: out/dashboard.csv
cache:
  max_age_minutes: 5
`
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DASHBOARD_CSV", "env/dashboard.csv")
	t.Setenv("DATA_PROVIDER", "finance-go")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Benchmark != "QQQ" {
		t.Errorf("expected benchmark QQQ, got %q", cfg.Benchmark)
	}
	if len(cfg.Tickers) != 1 || cfg.Tickers[0].Symbol != "XLK" {
		t.Errorf("unexpected tickers: %+v", cfg.Tickers)
	}
	if cfg.Output.CSV != "env/dashboard.csv" {
		t.Errorf("env override should win, got %q", cfg.Output.CSV)
	}
	if cfg.DataSource.Provider != "finance-go" {
		t.Errorf("expected provider finance-go, got %q", cfg.DataSource.Provider)
	}
	if cfg.Cache.MaxAgeMinutes != 5 {
		t.Errorf("expected max age 5, got %d", cfg.Cache.MaxAgeMinutes)
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	if err := cfg.Validate(); err == nil {
		t.Error("expected error with no output configured")
	}
	cfg.Output.CSV = "dashboard.csv"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	cfg.DataSource.Provider = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown provider")
	}
	cfg.DataSource.Provider = "yahoo"

	cfg.Benchmark = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty benchmark")
	}
}
