package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hugh/nextsaas/internal/database"
	"github.com/hugh/nextsaas/internal/mail"
	"github.com/hugh/nextsaas/internal/tasks"
	"github.com/hugh/nextsaas/pkg/config"
	"github.com/hugh/nextsaas/pkg/queue"
	"github.com/hugh/nextsaas/pkg/util"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := util.NewLogger(cfg.Server.Env)
	slog.SetDefault(logger)

	logger.Info("starting nextsaas worker")

	if err := util.ValidateCronExpr(cfg.Tokens.PurgeCron); err != nil {
		logger.Error("invalid TOKEN_PURGE_CRON", "cron", cfg.Tokens.PurgeCron, "error", err)
		os.Exit(1)
	}

	// Connect to database
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	srv := queue.NewServer(&cfg.Redis, 10, logger)

	handler := tasks.NewHandler(db, logger, mail.NewLogMailer(logger), cfg.Server.WebURL, cfg.Tokens.PasswordRecoverTTL())
	mux := asynq.NewServeMux()
	handler.RegisterHandlers(mux)

	// Periodic cleanup of expired single-use tokens
	scheduler := queue.NewScheduler(&cfg.Redis)
	entryID, err := scheduler.Register(cfg.Tokens.PurgeCron, tasks.NewPurgeTokensTask())
	if err != nil {
		logger.Error("failed to register token purge", "error", err)
		os.Exit(1)
	}
	next, _ := util.NextCronTime(cfg.Tokens.PurgeCron, time.Now())
	logger.Info("token purge scheduled", "cron", cfg.Tokens.PurgeCron, "entry_id", entryID, "next_run", next)

	if err := scheduler.Start(); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	if err := srv.Start(mux); err != nil {
		logger.Error("failed to start worker", "error", err)
		os.Exit(1)
	}

	logger.Info("worker started, waiting for tasks...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down worker...")
	scheduler.Shutdown()
	srv.Shutdown()

	sqlDB, _ := db.DB()
	sqlDB.Close()

	logger.Info("worker stopped")
}
