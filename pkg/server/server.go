// Package server wires the primary chi front-end, the bridge, and the
// secondary engine behind one listening socket. Everything here is
// constructed once at startup; the route table and resolver set are never
// mutated afterwards.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/gqlbridge/gqlbridge/pkg/bridge"
	"github.com/gqlbridge/gqlbridge/pkg/config"
	"github.com/gqlbridge/gqlbridge/pkg/engine"
	"github.com/gqlbridge/gqlbridge/pkg/graphql"
	"github.com/gqlbridge/gqlbridge/pkg/httputil"
	"github.com/gqlbridge/gqlbridge/pkg/logging"
	"github.com/gqlbridge/gqlbridge/pkg/upload"
)

// Server is the composed application: primary router, bridge, engine.
type Server struct {
	cfg    *config.Config
	log    *slog.Logger
	engine *engine.Engine
	router chi.Router
	http   *http.Server
}

// New builds the full request pipeline from the configuration.
func New(cfg *config.Config, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = logging.Nop()
	}

	eng, err := buildEngine(cfg, log)
	if err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, log: log, engine: eng}
	s.router = s.buildRouter()
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// buildEngine constructs the secondary engine: the upload hook on its
// middleware chain, the query-execution routes, and the demo routes.
func buildEngine(cfg *config.Config, log *slog.Logger) (*engine.Engine, error) {
	schema, err := graphql.ParseSchema(demoSchema)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}
	executor := graphql.NewExecutor(schema, demoResolvers())
	gql := graphql.NewHandler(executor)

	eng := engine.New()
	eng.SetLogger(log)

	eng.Use(upload.NewPreprocessor(upload.Config{
		Endpoint: cfg.GraphQLPath,
		MaxBytes: cfg.MaxUploadBytes,
		DevMode:  cfg.IsDevelopment(),
		Logger:   log,
	}).Middleware())

	eng.Handle(http.MethodGet, cfg.GraphQLPath, gql.Handle)
	eng.Handle(http.MethodPost, cfg.GraphQLPath, gql.Handle)
	eng.Handle(http.MethodOptions, cfg.GraphQLPath, gql.Handle)
	eng.Handle(http.MethodGet, cfg.GraphQLPath+"/health", graphql.HealthHandler)

	registerDemoRoutes(eng)

	return eng, nil
}

// buildRouter constructs the primary chi front-end. Every route family
// except the native index funnels through the same bridge handler.
func (s *Server) buildRouter() chi.Router {
	bridged := bridge.NewHandler(s.engine, s.log, s.cfg.IsDevelopment())

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(requestLogMiddleware(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/", s.handleIndex)

	r.Handle(s.cfg.GraphQLPath, bridged)
	r.Handle(s.cfg.GraphQLPath+"/health", bridged)
	r.Handle("/fastify", bridged)
	r.Handle("/fastify/*", bridged)

	// Unmatched paths are still bridged so the engine can answer with its
	// 404 shape instead of the router's bare not-found page.
	r.NotFound(bridged.ServeHTTP)

	return r
}

// handleIndex serves the native route-listing payload. It is the one route
// that bypasses the bridge.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"service": "gqlbridge",
		"routes":  s.RouteList(),
	})
}

// RouteList describes every route reachable through the server, bridged
// routes included.
func (s *Server) RouteList() []map[string]string {
	routes := []map[string]string{
		{"method": "GET", "path": "/"},
	}
	for _, rt := range s.engine.Routes() {
		routes = append(routes, map[string]string{
			"method": rt.Method,
			"path":   rt.Pattern,
		})
	}
	return routes
}

// Handler exposes the composed router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving on the configured address and blocks until the
// listener stops.
func (s *Server) Start() error {
	s.log.Info("server listening",
		"addr", s.cfg.Addr,
		"env", s.cfg.Env,
		"graphql", s.cfg.GraphQLPath,
	)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("server shutting down")
	return s.http.Shutdown(ctx)
}
