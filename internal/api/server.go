// Package api provides the HTTP surface of the tracking core.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shosa/coregre-tracking/internal/metrics"
	"github.com/shosa/coregre-tracking/internal/service"
	"github.com/shosa/coregre-tracking/internal/store"
)

const (
	apiTitle   = "CoreGre Tracking API"
	apiVersion = "1.0.0"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Types  *service.TypeService
	Links  *service.LinkService
	Tree   *service.TreeService
	Search *service.SearchService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    store.Store
	services *Services
	metrics  *metrics.Metrics
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, m *metrics.Metrics, corsOrigins []string, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(m.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	humaConfig := huma.DefaultConfig(apiTitle, apiVersion)
	humaAPI := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:    st,
		services: services,
		metrics:  m,
		router:   router,
		api:      humaAPI,
		logger:   logger,
	}

	s.registerHealthRoutes()
	s.registerTypeRoutes()
	s.registerSearchRoutes()
	s.registerLinkRoutes()
	s.registerTreeRoutes()

	// Plain chi routes: streamed file download and the scrape endpoint
	// don't fit huma's typed response model.
	router.Get("/api/v1/tracking/links/export", s.handleExportLinks)
	router.Method(http.MethodGet, "/metrics", m.Handler())

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
