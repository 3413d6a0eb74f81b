package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hugh/nextsaas/internal/api/docs"
	"github.com/hugh/nextsaas/internal/api/handlers"
	"github.com/hugh/nextsaas/internal/api/middleware"
	"github.com/hugh/nextsaas/internal/auth"
	"github.com/hugh/nextsaas/internal/invites"
	"github.com/hugh/nextsaas/internal/orgs"
	"github.com/hugh/nextsaas/internal/projects"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *slog.Logger
	Tokens         auth.TokenService
	AuthService    auth.Authenticator
	Orgs           *orgs.Service
	Projects       *projects.Service
	Invites        *invites.Service
	Docs           *docs.Document
	Registry       *prometheus.Registry
	Limiter        middleware.Limiter // applied to the public auth endpoints
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	if cfg.Registry != nil {
		r.Use(middleware.NewMetrics(cfg.Registry).Handler)
	}

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis)
	authHandler := handlers.NewAuthHandler(cfg.AuthService, cfg.Logger)
	orgHandler := handlers.NewOrganizationHandler(cfg.Orgs, cfg.Logger)
	projectHandler := handlers.NewProjectHandler(cfg.Projects, cfg.Logger)
	inviteHandler := handlers.NewInviteHandler(cfg.Invites, cfg.Logger)

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	if cfg.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
	}
	if cfg.Docs != nil {
		r.Get("/docs/openapi.yaml", cfg.Docs.ServeYAML)
		r.Get("/docs/openapi.json", cfg.Docs.ServeJSON)
	}

	// Public auth endpoints
	r.Group(func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(middleware.RateLimit(cfg.Limiter, cfg.Logger))
		}
		r.Post("/users", authHandler.CreateAccount)
		r.Post("/sessions/password", authHandler.PasswordLogin)
		r.Post("/sessions/github", authHandler.GitHubLogin)
		r.Post("/password/recover", authHandler.RequestPasswordRecover)
		r.Post("/password/reset", authHandler.ResetPassword)
	})

	r.Get("/invites/{inviteId}", inviteHandler.Get)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Tokens))

		r.Get("/profile", authHandler.Profile)
		r.Get("/pending-invites", inviteHandler.Pending)
		r.Post("/invites/{inviteId}/accept", inviteHandler.Accept)
		r.Post("/invites/{inviteId}/reject", inviteHandler.Reject)

		r.Route("/organizations", func(r chi.Router) {
			r.Post("/", orgHandler.Create)
			r.Get("/", orgHandler.List)

			r.Route("/{slug}", func(r chi.Router) {
				r.Get("/", orgHandler.Get)
				r.Put("/", orgHandler.Update)
				r.Delete("/", orgHandler.Shutdown)
				r.Get("/membership", orgHandler.Membership)
				r.Patch("/owner", orgHandler.TransferOwnership)
				r.Put("/avatar", orgHandler.SetAvatar)
				r.Get("/billing", orgHandler.Billing)

				r.Route("/members", func(r chi.Router) {
					r.Get("/", orgHandler.ListMembers)
					r.Put("/{memberId}", orgHandler.UpdateMember)
					r.Delete("/{memberId}", orgHandler.RemoveMember)
				})

				r.Route("/projects", func(r chi.Router) {
					r.Post("/", projectHandler.Create)
					r.Get("/", projectHandler.List)
					r.Get("/{projectSlug}", projectHandler.Get)
					r.Put("/{projectId}", projectHandler.Update)
					r.Delete("/{projectId}", projectHandler.Delete)
				})

				r.Route("/invites", func(r chi.Router) {
					r.Post("/", inviteHandler.Create)
					r.Get("/", inviteHandler.List)
					r.Delete("/{inviteId}", inviteHandler.Revoke)
				})
			})
		})
	})

	return &Router{r}
}
