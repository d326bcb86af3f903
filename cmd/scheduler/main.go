// Package main is the entry point for the sport-log scheduler: a thin HTTP
// client against the server's admin API that periodically expands
// ActionRules into ActionEvents, expires stale events, and garbage collects
// tombstones (§4.2, §6 cmd/scheduler).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sport-log/sport-log-server/internal/config"
	"github.com/sport-log/sport-log-server/internal/pkg/logger"
	"github.com/sport-log/sport-log-server/internal/scheduler"
)

// schedule matches the original's recommendation to run hourly as a cron
// job; here it is the in-process trigger instead of an external cron entry.
const schedule = "0 * * * *"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadScheduler()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	log := logger.L()
	client := scheduler.NewClient(cfg.ServerURL, cfg.AdminPassword)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := cron.New()
	_, err = c.AddFunc(schedule, func() {
		log.Info("scheduler pass starting")
		scheduler.Run(ctx, client, cfg.GarbageCollectionMinDays, log)
		log.Info("scheduler pass complete")
	})
	if err != nil {
		return fmt.Errorf("register schedule: %w", err)
	}

	c.Start()
	defer c.Stop()

	log.Info("scheduler started", zap.String("schedule", schedule), zap.String("server_url", cfg.ServerURL))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("scheduler shutting down")
	return nil
}
