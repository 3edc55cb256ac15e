// Copyright (c) 2026 Lotsawa. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the composition root for the HTTP transport (chi router).
  - Domain packages expose a Handler with Routes(); this package only mounts them.
  - Only this package and cmd/api start or stop the server.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/lotsawa/canon/internal/catalog"
	"github.com/lotsawa/canon/internal/media"
	"github.com/lotsawa/canon/internal/platform/config"
	"github.com/lotsawa/canon/internal/platform/constants"
	"github.com/lotsawa/canon/internal/platform/middleware"
	"github.com/lotsawa/canon/internal/search"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler; it answers 200 while the process runs.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; it answers 200 when every dependency is healthy.
	Readiness http.HandlerFunc

	// Catalog serves categories, texts and editions.
	Catalog *catalog.Handler

	// Media serves news, timeline, periods, audio and video.
	Media *media.Handler

	// Search serves the federated search.
	Search *search.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := NewRouter(context, cfg, log, verifier, h)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter builds the routing tree on its own so it can be exercised without
// a listening server.
func NewRouter(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/", mergeRoutes(h.Catalog.Routes(), h.Media.Routes(), h.Search.Routes()))
	})

	return r
}

// mergeRoutes serves every router from the same prefix. chi allows a single
// Mount per pattern, so the domain routers are tried in order and the first
// one that knows the path wins.
func mergeRoutes(routers ...chi.Router) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		path := request.URL.Path
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil && routeContext.RoutePath != "" {
			path = routeContext.RoutePath
		}

		for _, router := range routers {
			if router.Match(chi.NewRouteContext(), request.Method, path) {
				router.ServeHTTP(writer, request)
				return
			}
		}
		routers[len(routers)-1].ServeHTTP(writer, request)
	})
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
