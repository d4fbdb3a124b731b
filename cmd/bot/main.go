package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"CryptoBuddy/internal/collector"
	"CryptoBuddy/internal/config"
	"CryptoBuddy/internal/engine"
	"CryptoBuddy/internal/notifier"
	"CryptoBuddy/internal/recorder"
	"CryptoBuddy/internal/registry"
	"CryptoBuddy/internal/router"
	"CryptoBuddy/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CryptoBuddy starting...")

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
	fetcher := collector.NewBitMexFetcher(cfg.DataSource.BaseURL, cfg.Proxy)
	log.Printf("[INFO] data source: %s, symbols: %v", fetcher.Name(), cfg.DataSource.Symbols)

	// Init alert registry
	reg := registry.NewRegistry(cfg.DataSource.Symbols)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

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

	// Init engine and scheduler
	eng := engine.NewEngine(fetcher, reg, tn, rec, cfg.DataSource.Symbols)
	sched := scheduler.NewScheduler(eng)
	if err := sched.Register(cfg.Bot.IntervalSeconds); err != nil {
		log.Fatalf("[FATAL] register check cycle: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start command polling
	rt := router.NewRouter(reg, tn, cfg.Bot.Prefix)
	go tn.StartPolling(ctx, rt.HandleMessage)
	log.Println("[INFO] Telegram polling started")

	// Announce startup to the destination chat
	if err := tn.SendWithRetry(ctx, notifier.FormatStartup(cfg.DataSource.Symbols, cfg.Bot.IntervalSeconds), 3); err != nil {
		log.Printf("[ERROR] send startup message: %v", err)
	}

	log.Println("[INFO] CryptoBuddy is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] CryptoBuddy stopped")
}
