package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sat-food/sat/internal/handler"
	"github.com/sat-food/sat/internal/metrics"
	"github.com/sat-food/sat/internal/middleware"
	"github.com/sat-food/sat/internal/service"
)

// RouterDeps holds everything NewRouter wires into the route tree.
type RouterDeps struct {
	Services *service.Services
	Logger   *slog.Logger
	Metrics  metrics.Recorder
	Gatherer prometheus.Gatherer

	// Optional readiness dependencies.
	DB    handler.HealthChecker
	Cache handler.HealthChecker

	RateLimit middleware.RateLimitConfig
	Security  middleware.SecurityConfig
	CORS      middleware.CORSConfig
}

// NewRouter builds the HTTP route tree.
func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := deps.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	svc := deps.Services

	h := handler.New()
	healthHandler := handler.NewHealthHandler(deps.DB, deps.Cache, logger)
	authHandler := handler.NewAuthHandler(svc.Auth, logger)
	restaurantHandler := handler.NewRestaurantHandler(svc.Restaurants, logger)
	boxHandler := handler.NewBoxHandler(svc.Boxes, logger)
	favoriteHandler := handler.NewFavoriteHandler(svc.Favorites, logger)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(deps.Security))
	r.Use(middleware.CORS(deps.CORS))
	if deps.Security.MaxRequestBodySize > 0 {
		r.Use(middleware.MaxBodySize(deps.Security.MaxRequestBodySize))
	}

	// Probes and metrics (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Method(http.MethodGet, "/metrics", handler.NewMetricsHandler(deps.Gatherer))

	rateLimitCfg := deps.RateLimit
	if rateLimitCfg.Logger == nil {
		rateLimitCfg.Logger = logger
	}
	if rateLimitCfg.Scope == "" {
		rateLimitCfg.Scope = "auth"
	}
	if rateLimitCfg.Limiter == nil {
		rateLimitCfg.Enabled = false
	}

	requireAuth := middleware.Auth(middleware.AuthConfig{
		Logger:        logger,
		Authenticator: svc.Auth,
		Metrics:       recorder,
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/", h.Root)

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.RateLimitIP(rateLimitCfg)).Post("/register", authHandler.Register)
			r.With(middleware.RateLimitIP(rateLimitCfg)).Post("/login", authHandler.Login)
			r.With(requireAuth).Get("/me", authHandler.Me)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/restaurants", func(r chi.Router) {
				r.Use(middleware.RequireRestaurant())
				r.Post("/", restaurantHandler.Create)
				r.Get("/me", restaurantHandler.GetOwn)
			})

			r.Route("/boxes", func(r chi.Router) {
				// Any authenticated role may browse the catalog.
				r.Get("/", boxHandler.List)
				r.With(middleware.RequireRestaurant()).Post("/", boxHandler.Create)
				r.With(middleware.RequireRestaurant()).Get("/my", boxHandler.ListOwn)
				r.With(middleware.RequireRestaurant()).Patch("/{id}/availability", boxHandler.SetAvailability)
			})

			r.Route("/favorites", func(r chi.Router) {
				r.Use(middleware.RequireCustomer())
				r.Get("/", favoriteHandler.List)
				r.Post("/{box_id}", favoriteHandler.Add)
				r.Delete("/{box_id}", favoriteHandler.Remove)
			})
		})
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
