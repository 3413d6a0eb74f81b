package main

import (
	"log/slog"
	"os"

	"github.com/hugh/nextsaas/internal/database"
	"github.com/hugh/nextsaas/pkg/config"
	"github.com/hugh/nextsaas/pkg/util"
	"github.com/joho/godotenv"
)

// Usage: migrate [up|down]
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := util.NewLogger(cfg.Server.Env)

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	if err := database.Migrate(cfg.Database.DSN(), direction); err != nil {
		logger.Error("migration failed", "direction", direction, "error", err)
		os.Exit(1)
	}

	logger.Info("migrations applied", "direction", direction)
}
