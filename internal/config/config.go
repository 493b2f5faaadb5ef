package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"marketdash/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Benchmark string             `yaml:"benchmark"`
	Tickers   []model.TickerSpec `yaml:"tickers"`

	DataSource struct {
		Provider string `yaml:"provider"` // "yahoo" or "finance-go"
		Range    string `yaml:"range"`
		Interval string `yaml:"interval"`
	} `yaml:"data_source"`

	Cache struct {
		Dir           string `yaml:"dir"`
		MaxAgeMinutes int    `yaml:"max_age_minutes"`
		Disabled      bool   `yaml:"disabled"`
	} `yaml:"cache"`

	Output struct {
		Workbook string `yaml:"workbook"`
		Sheet    string `yaml:"sheet"`
		CSV      string `yaml:"csv"`
	} `yaml:"output"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`

	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`

	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`

	RequestDelayMS int    `yaml:"request_delay_ms"`
	Proxy          string `yaml:"proxy"`
}

// DefaultTickers is the dashboard universe used when the config file
// defines none.
var DefaultTickers = []model.TickerSpec{
	{Symbol: "SPY", Name: "S&P 500 (SPY)", Category: "INDEX"},
	{Symbol: "QQQ", Name: "Nasdaq 100 (QQQ)", Category: "INDEX"},
	{Symbol: "IWM", Name: "Russell 2000 (IWM)", Category: "INDEX"},
	{Symbol: "DIA", Name: "Dow 30 (DIA)", Category: "INDEX"},
	{Symbol: "XLK", Name: "Technology (XLK)", Category: "SECTOR"},
	{Symbol: "XLF", Name: "Financials (XLF)", Category: "SECTOR"},
	{Symbol: "XLE", Name: "Energy (XLE)", Category: "SECTOR"},
	{Symbol: "XLV", Name: "Health Care (XLV)", Category: "SECTOR"},
	{Symbol: "IWF", Name: "Growth (IWF)", Category: "STYLE"},
	{Symbol: "IWD", Name: "Value (IWD)", Category: "STYLE"},
	{Symbol: "MTUM", Name: "Momentum (MTUM)", Category: "STYLE"},
	{Symbol: "QUAL", Name: "Quality (QUAL)", Category: "STYLE"},
	{Symbol: "TLT", Name: "Long Treasuries (TLT)", Category: "RISK"},
	{Symbol: "GLD", Name: "Gold (GLD)", Category: "RISK"},
	{Symbol: "UUP", Name: "US Dollar (UUP)", Category: "RISK"},
	{Symbol: "VIXY", Name: "VIX Short-Term (VIXY)", Category: "RISK"},
	{Symbol: "USO", Name: "Oil (USO)", Category: "COMMOD"},
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("DASHBOARD_XLSX"); v != "" {
		cfg.Output.Workbook = v
	}
	if v := os.Getenv("DASHBOARD_CSV"); v != "" {
		cfg.Output.CSV = v
	}
	if v := os.Getenv("CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("REQUEST_DELAY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.RequestDelayMS = ms
		}
	}

	// Defaults
	if cfg.Benchmark == "" {
		cfg.Benchmark = "SPY"
	}
	if len(cfg.Tickers) == 0 {
		cfg.Tickers = DefaultTickers
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.Range == "" {
		cfg.DataSource.Range = "2y"
	}
	if cfg.DataSource.Interval == "" {
		cfg.DataSource.Interval = "1d"
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = "cache"
	}
	if cfg.Cache.MaxAgeMinutes == 0 {
		cfg.Cache.MaxAgeMinutes = 60
	}
	if cfg.Output.Sheet == "" {
		cfg.Output.Sheet = "Data"
	}
	if cfg.Schedule.RefreshCron == "" {
		// weekdays after US close
		cfg.Schedule.RefreshCron = "0 30 22 * * 1-5"
	}
	if cfg.RequestDelayMS == 0 {
		cfg.RequestDelayMS = 200
	}

	return cfg, nil
}

// Validate checks that the configuration describes a runnable update.
func (c *Config) Validate() error {
	if c.Benchmark == "" {
		return fmt.Errorf("benchmark is required")
	}
	if len(c.Tickers) == 0 {
		return fmt.Errorf("at least one ticker is required")
	}
	for _, t := range c.Tickers {
		if t.Symbol == "" {
			return fmt.Errorf("ticker with empty symbol")
		}
	}
	switch c.DataSource.Provider {
	case "yahoo", "finance-go":
	default:
		return fmt.Errorf("unknown data_source.provider %q", c.DataSource.Provider)
	}
	if c.Output.Workbook == "" && c.Output.CSV == "" {
		return fmt.Errorf("at least one output (workbook or csv) is required")
	}
	return nil
}
