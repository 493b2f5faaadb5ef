package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"marketdash/internal/config"
	"marketdash/internal/dashboard"
	"marketdash/internal/fetcher"
	"marketdash/internal/notifier"
	"marketdash/internal/recorder"
	"marketdash/internal/scheduler"
	"marketdash/internal/writer"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] marketdash starting...")

	var (
		cfgPath  = flag.String("config", "", "path to YAML config file")
		xlsxPath = flag.String("xlsx", "", "workbook to merge results into")
		csvPath  = flag.String("csv", "", "CSV file to rewrite")
		cacheDir = flag.String("cache", "", "cache directory for raw responses")
		noCache  = flag.Bool("no-cache", false, "disable response caching")
		watch    = flag.Bool("watch", false, "keep running and refresh on the configured cron schedule")
	)
	flag.Parse()

	// Local .env, if present, feeds the env overrides below.
	_ = godotenv.Load()

	path := *cfgPath
	if path == "" {
		path = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}

	// Flags override config and env.
	if *xlsxPath != "" {
		cfg.Output.Workbook = *xlsxPath
	}
	if *csvPath != "" {
		cfg.Output.CSV = *csvPath
	}
	if *cacheDir != "" {
		cfg.Cache.Dir = *cacheDir
	}
	if *noCache {
		cfg.Cache.Disabled = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var cache *fetcher.Cache
	if !cfg.Cache.Disabled {
		cache = fetcher.NewCache(cfg.Cache.Dir, time.Duration(cfg.Cache.MaxAgeMinutes)*time.Minute)
	}
	var f fetcher.Fetcher
	if cfg.DataSource.Provider == "finance-go" {
		f = fetcher.NewFinanceGoFetcher()
	} else {
		f = fetcher.NewYahooFetcher(cfg.Proxy, cache)
	}
	log.Printf("[INFO] data source: %s", f.Name())

	// Init writers
	var writers []writer.Writer
	if cfg.Output.Workbook != "" {
		writers = append(writers, &writer.ExcelWriter{Path: cfg.Output.Workbook, Sheet: cfg.Output.Sheet})
	}
	if cfg.Output.CSV != "" {
		writers = append(writers, &writer.CSVWriter{Path: cfg.Output.CSV})
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init Telegram notifier (optional)
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	upd := dashboard.NewUpdater(f, dashboard.Options{
		Benchmark:    cfg.Benchmark,
		Tickers:      cfg.Tickers,
		Range:        cfg.DataSource.Range,
		Interval:     cfg.DataSource.Interval,
		RequestDelay: time.Duration(cfg.RequestDelayMS) * time.Millisecond,
	})

	runOnce := func() error {
		rows, err := upd.Run()
		if err != nil {
			return err
		}
		for _, w := range writers {
			if err := w.Write(rows); err != nil {
				return fmt.Errorf("write %s: %w", w.Dest(), err)
			}
			log.Printf("[INFO] dashboard written: %s", w.Dest())
		}
		if err := rec.RecordRun(&recorder.RunRecord{Source: f.Name(), Benchmark: cfg.Benchmark, Rows: rows}); err != nil {
			log.Printf("[ERROR] record run: %v", err)
		}
		if tn != nil {
			if err := tn.SendWithRetry(ctx, notifier.FormatRunSummary(rows, writers[0].Dest()), 3); err != nil {
				log.Printf("[ERROR] send notification: %v", err)
			}
		}
		return nil
	}

	if !*watch {
		if err := runOnce(); err != nil {
			log.Fatalf("[FATAL] %v", err)
		}
		return
	}

	// Watch mode: refresh on the configured cron schedule.
	sched, err := scheduler.New(cfg.Schedule.RefreshCron, func() {
		if err := runOnce(); err != nil {
			log.Printf("[ERROR] refresh: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, refreshing now")
		go sched.RunNow()
	}

	log.Println("[INFO] marketdash is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] marketdash stopped")
}
