package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"pvpulse/internal/config"
	"pvpulse/internal/crawler"
	"pvpulse/internal/infrastructure"
)

func main() {
	configFile := flag.String("config", "", "path to YAML config file")
	pageURL := flag.String("url", "", "price page URL (overrides config)")
	out := flag.String("out", "", "history CSV path (overrides config)")
	headless := flag.Bool("headless", true, "run browser headless")
	schedule := flag.String("schedule", "", "cron expression; empty runs once and exits")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", slog.String("error", err.Error()))
		logger = slog.Default()
	}

	if *pageURL != "" {
		cfg.Crawler.PageURL = *pageURL
	}
	cfg.Crawler.Headless = *headless
	if *schedule != "" {
		cfg.Crawler.Schedule = *schedule
	}
	csvPath := cfg.Source.CSVPath
	if *out != "" {
		csvPath = *out
	}

	if cfg.Crawler.PageURL == "" {
		logger.Error("no price page URL configured")
		os.Exit(1)
	}

	c := crawler.New(cfg.Crawler, logger)
	sched := crawler.NewScheduler(c, csvPath, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Crawler.Schedule == "" {
		if err := sched.RunOnce(ctx); err != nil {
			logger.Error("crawl failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	if err := sched.Register(cfg.Crawler.Schedule); err != nil {
		logger.Error("failed to register schedule", slog.String("error", err.Error()))
		os.Exit(1)
	}
	sched.Start()
	<-ctx.Done()
	sched.Stop()
}
