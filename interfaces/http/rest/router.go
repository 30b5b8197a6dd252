package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	commandbus "netviz/application/commands/bus"
	"netviz/application/ports"
	querybus "netviz/application/queries/bus"
	"netviz/application/sessions"
	"netviz/infrastructure/config"
	"netviz/interfaces/http/rest/handlers"
	"netviz/interfaces/http/rest/middleware"
	"netviz/pkg/common"
	"netviz/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg        *config.Config
	store      *sessions.Store
	source     ports.GraphSource
	commandBus *commandbus.CommandBus
	queryBus   *querybus.QueryBus
	metrics    *observability.Collector
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	store *sessions.Store,
	source ports.GraphSource,
	commandBus *commandbus.CommandBus,
	queryBus *querybus.QueryBus,
	metrics *observability.Collector,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:        cfg,
		store:      store,
		source:     source,
		commandBus: commandBus,
		queryBus:   queryBus,
		metrics:    metrics,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.cfg.EnableMetrics {
		router.Use(middleware.Metrics(rt.metrics))
	}

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.dashboard.app"},
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID", "X-Scene-Revision"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health and observability
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.cfg.EnableMetrics {
		router.Handle("/metrics", promhttp.HandlerFor(rt.metrics.Registry(), promhttp.HandlerOpts{}))
	}

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(middleware.AuthConfig{
			Secret: rt.cfg.JWTSecret,
			Issuer: rt.cfg.JWTIssuer,
		}, rt.logger))

		sessionHandler := handlers.NewSessionHandler(rt.store, rt.source, rt.commandBus, rt.logger)
		sceneHandler := handlers.NewSceneHandler(rt.queryBus, rt.logger)
		viewportHandler := handlers.NewViewportHandler(rt.commandBus, rt.queryBus, rt.logger)
		selectionHandler := handlers.NewSelectionHandler(rt.commandBus, rt.queryBus, rt.logger)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.CreateSession)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Delete("/", sessionHandler.DeleteSession)
				r.Post("/reload", sessionHandler.ReloadGraph)

				r.Get("/scene", sceneHandler.GetScene)
				r.Get("/graph", sceneHandler.GetGraphData)
				r.Post("/graph", sessionHandler.LoadGraph)

				r.Route("/viewport", func(r chi.Router) {
					r.Get("/", viewportHandler.GetViewport)
					r.Post("/pan", viewportHandler.Pan)
					r.Post("/zoom", viewportHandler.ZoomAt)
					r.Post("/zoom-step", viewportHandler.ZoomStep)
					r.Post("/reset", viewportHandler.Reset)
				})

				r.Post("/pointer/click", selectionHandler.Click)

				r.Route("/selection", func(r chi.Router) {
					r.Get("/", selectionHandler.GetSelection)
					r.Post("/", selectionHandler.Select)
					r.Delete("/", selectionHandler.ClearSelection)
				})
			})
		})
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "healthy",
		"sessions": rt.store.Count(),
	})
}

func (rt *Router) readinessCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
