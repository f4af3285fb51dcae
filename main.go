package main

import (
	"byway/cache"
	"byway/config"
	"byway/database"
	"byway/repository"
	"byway/utils/hasher"
	"byway/utils/logger"
	"byway/utils/notify"
	"byway/utils/scheduler"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	cfg := config.LoadConfig()

	logr, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logr.Sync()

	database.ConnectDb(cfg, logr)
	db := database.Database.Db

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.NewSeeder(db, cfg, hasher.New(cfg.SaltRound), logr).Run(ctx); err != nil {
		logr.Error("Seeding failed", "error", err)
	}

	notifier, err := notify.New(cfg, logr)
	if err != nil {
		logr.Warn("Email provider unavailable, falling back to log", "provider", cfg.EmailProvider, "error", err)
		notifier = notify.NewLog(logr)
	}

	catalogCache, err := cache.New(ctx, cfg, logr)
	if err != nil {
		logr.Warn("Redis unavailable, catalog cache disabled", "error", err)
	}

	digest := scheduler.NewDigest(repository.NewStatsRepo(db), notifier, logr)
	cronJobs, err := scheduler.Start(cfg.DigestCron, digest, logr)
	if err != nil {
		logr.Error("Invalid DIGEST_CRON, sales digest disabled", "cron", cfg.DigestCron, "error", err)
	}

	app := newApp(deps{
		cfg:       cfg,
		db:        db,
		log:       logr,
		notifier:  notifier,
		cache:     catalogCache,
		accessLog: true,
	})

	go func() {
		<-ctx.Done()
		logr.Info("Shutting down...")
		if cronJobs != nil {
			cronJobs.Stop()
		}
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logr.Error("Shutdown failed", "error", err)
		}
	}()

	logr.Info("Server is running", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logr.Fatal("Server stopped", "error", err)
	}
}
