// Command scheduler runs the periodic jobs without the HTTP API.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/app"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.Logging.Level, cfg.Logging.Path, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg, zlog)
	if err != nil {
		zlog.Fatal("database", zap.Error(err))
	}

	locker, closeLocker := lock.FromConfig(ctx, cfg.Redis, zlog)
	defer closeLocker()

	a, err := app.New(db, cfg, locker, zlog)
	if err != nil {
		zlog.Fatal("build app", zap.Error(err))
	}

	a.Scheduler.Start()
	zlog.Info("scheduler running",
		zap.String("settlement", cfg.Scheduler.SettlementSpec),
		zap.String("missedSweep", cfg.Scheduler.MissedSweepSpec),
	)

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.Shutdown(shutdownCtx); err != nil {
		zlog.Error("shutdown", zap.Error(err))
	}
}
