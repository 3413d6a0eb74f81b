package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hugh/nextsaas/internal/api"
	"github.com/hugh/nextsaas/internal/api/docs"
	"github.com/hugh/nextsaas/internal/api/middleware"
	"github.com/hugh/nextsaas/internal/auth"
	"github.com/hugh/nextsaas/internal/database"
	"github.com/hugh/nextsaas/internal/invites"
	"github.com/hugh/nextsaas/internal/orgs"
	"github.com/hugh/nextsaas/internal/projects"
	"github.com/hugh/nextsaas/internal/storage"
	"github.com/hugh/nextsaas/pkg/config"
	"github.com/hugh/nextsaas/pkg/crypto"
	"github.com/hugh/nextsaas/pkg/queue"
	"github.com/hugh/nextsaas/pkg/util"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
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

	logger.Info("starting nextsaas server",
		"env", cfg.Server.Env,
		"addr", cfg.Server.Addr(),
	)
	if len(cfg.Server.AllowedOrigins) == 0 && !cfg.Server.IsDevelopment() {
		logger.Warn("CORS_ALLOWED_ORIGINS is not set, only http://localhost:3000 may call the API")
	}

	// Connect to database. Schema changes go through cmd/migrate.
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn("failed to connect to Redis", "error", err)
		redisClient.Close()
		redisClient = nil
	}

	// Emails are sent by the worker; without Redis they are only logged.
	var asynqClient *asynq.Client
	var enqueuer queue.Enqueuer
	if redisClient != nil {
		asynqClient = queue.NewClient(&cfg.Redis)
		enqueuer = asynqClient
	}

	encryptor, err := crypto.NewEncryptor(cfg.Encryption.Key)
	if err != nil {
		logger.Error("failed to create encryptor", "error", err)
		os.Exit(1)
	}
	if cfg.Encryption.Key == "" {
		logger.Warn("ENCRYPTION_KEY not set, using generated key - stored OAuth tokens will be unreadable after restart")
	}

	authOpts := auth.Options{
		Encryptor:  encryptor,
		Queue:      enqueuer,
		Logger:     logger,
		RecoverTTL: cfg.Tokens.PasswordRecoverTTL(),
	}
	if cfg.GitHub.Enabled() {
		authOpts.GitHub = auth.NewGitHubOAuth(cfg.GitHub)
	} else {
		logger.Warn("GitHub OAuth not configured, /sessions/github is disabled")
	}

	var avatarStore storage.ObjectStore
	if cfg.Storage.Enabled() {
		s3Store, err := storage.NewS3Store(context.Background(), cfg.Storage)
		if err != nil {
			logger.Error("failed to configure object storage", "error", err)
			os.Exit(1)
		}
		avatarStore = s3Store
	} else {
		logger.Warn("S3_BUCKET not set, avatar uploads are disabled")
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())

	openapi, err := docs.Load()
	if err != nil {
		logger.Error("failed to load API docs", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Rate limiting for the public auth endpoints; RATE_LIMIT_REQUESTS=0 disables it.
	var limiter middleware.Limiter
	switch {
	case cfg.RateLimit.Requests <= 0:
	case redisClient != nil:
		limiter = middleware.NewRedisRateLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds)
	default:
		memLimiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds)
		defer memLimiter.Stop()
		limiter = memLimiter
	}

	// Create router
	router := api.NewRouter(api.RouterConfig{
		DB:             db,
		Redis:          redisClient,
		Logger:         logger,
		Tokens:         jwtService,
		AuthService:    auth.NewService(db, jwtService, authOpts),
		Orgs:           orgs.NewService(db, avatarStore, logger),
		Projects:       projects.NewService(db, logger),
		Invites:        invites.NewService(db, enqueuer, logger),
		Docs:           openapi,
		Registry:       registry,
		Limiter:        limiter,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if asynqClient != nil {
		asynqClient.Close()
	}
	if redisClient != nil {
		redisClient.Close()
	}

	sqlDB, _ := db.DB()
	sqlDB.Close()

	logger.Info("server stopped")
}
