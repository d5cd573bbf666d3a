package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MarketHeatmap/internal/collector"
	"MarketHeatmap/internal/config"
	"MarketHeatmap/internal/heatmap"
	"MarketHeatmap/internal/notifier"
	"MarketHeatmap/internal/recorder"
	"MarketHeatmap/internal/roster"
	"MarketHeatmap/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketHeatmap starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.Alpaca.APIKey != "" {
		fetcher = collector.NewAlpacaFetcher(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.DataURL)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	col := collector.NewCollector(fetcher, cfg.DataSource.WindowDays)

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
	if cfg.Telegram.BotToken != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rend := &heatmap.Renderer{Title: cfg.Output.Title, CodeSuffix: cfg.Roster.CodeSuffix}

	run := func() error {
		refs, err := roster.Load(cfg.Roster.CSVPath)
		if err != nil {
			return err
		}
		log.Printf("[INFO] loaded %d stocks from %s", len(refs), cfg.Roster.CSVPath)

		obs := col.Resolve(refs)

		now := time.Now()
		page, err := rend.Render(refs, obs, now)
		if err != nil {
			return err
		}
		if err := heatmap.WriteFile(cfg.Output.HTMLPath, page); err != nil {
			return err
		}
		log.Printf("[INFO] heatmap written: %s", cfg.Output.HTMLPath)

		snap := &recorder.RunSnapshot{
			GeneratedAt: now,
			OutputPath:  cfg.Output.HTMLPath,
			Total:       len(refs),
		}
		for _, ref := range refs {
			o := obs[ref.Code]
			if o.Valid {
				snap.Resolved++
			}
			snap.Observations = append(snap.Observations, o)
		}
		if err := rec.RecordRun(snap); err != nil {
			log.Printf("[ERROR] record run: %v", err)
		}
		if tn != nil {
			if err := tn.SendWithRetry(ctx, notifier.FormatRunSummary(cfg.Output.Title, snap), 3); err != nil {
				log.Printf("[ERROR] send run summary: %v", err)
			}
		}
		return nil
	}

	// Single pass unless a schedule is configured.
	if cfg.Schedule.Cron == "" {
		if err := run(); err != nil {
			log.Fatalf("[FATAL] %v", err)
		}
		return
	}

	// Scheduled mode: regenerate on the configured cron expression.
	sched := scheduler.NewScheduler(func() {
		if err := run(); err != nil {
			log.Printf("[ERROR] scheduled run: %v", err)
		}
	})
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, generating now")
		go sched.Job()
	}

	log.Println("[INFO] MarketHeatmap is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
}
