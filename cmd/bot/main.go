package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"NiftyPulse/internal/calendar"
	"NiftyPulse/internal/collector"
	"NiftyPulse/internal/config"
	"NiftyPulse/internal/notifier"
	"NiftyPulse/internal/recorder"
	"NiftyPulse/internal/scheduler"
	"NiftyPulse/internal/strategy"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] NiftyPulse starting...")

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

	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		log.Fatalf("[FATAL] load timezone %q: %v", cfg.Schedule.Timezone, err)
	}

	// Init fetchers: Fyers primary when configured, Yahoo always as fallback.
	yahoo := collector.NewYahooFetcher(cfg.Proxy)
	var primary collector.Fetcher = yahoo
	var fallback collector.Fetcher
	if cfg.Feed.BaseURL != "" {
		primary = collector.NewFyersFetcher(cfg.Feed.BaseURL, cfg.Feed.AccessToken, cfg.Proxy)
		fallback = yahoo
	}
	log.Printf("[INFO] data source: %s", primary.Name())

	col := collector.NewCollector(primary, fallback, cfg.Feed.Symbol, cfg.Feed.Days)

	// Init signal engine
	eng := strategy.NewEngine(strategy.Params{
		RSIPeriod:      cfg.Signal.RSIPeriod,
		FastSpan:       cfg.Signal.EMAFast,
		SlowSpan:       cfg.Signal.EMASlow,
		Lookback:       cfg.Signal.Lookback,
		MinBars:        cfg.Signal.MinBars,
		SummaryMinBars: cfg.Signal.SummaryMinBars,
	})

	// Init webhook sinks
	var sinks []notifier.Sink
	if cfg.Webhooks.WhatsAppURL != "" {
		sinks = append(sinks, notifier.NewWhatsAppSink(cfg.Webhooks.WhatsAppURL, cfg.Proxy))
	}
	if cfg.Webhooks.EmailWebhook != "" {
		sinks = append(sinks, notifier.NewEmailWebhookSink(cfg.Webhooks.EmailWebhook, cfg.Proxy))
	}
	nt := notifier.NewNotifier(sinks...)

	// Init holiday calendar
	cal := calendar.New(cfg.Calendar.HolidayURL, time.Duration(cfg.Calendar.RefreshDays)*24*time.Hour)

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

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, eng, nt, rec, cal, loc, cfg.Feed.Symbol, cfg.DebugMode)
	if err := sched.RegisterAll(cfg.Schedule.CycleCron, cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing signal cycle now")
		go sched.RunCycleNow()
	}

	log.Println("[INFO] NiftyPulse is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] NiftyPulse stopped")
}
