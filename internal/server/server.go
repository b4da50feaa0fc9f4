// Package server provides the HTTP API for the caselaw service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/kwabena/caselaw/internal/cache"
	"github.com/kwabena/caselaw/internal/config"
	"github.com/kwabena/caselaw/internal/models"
	"github.com/kwabena/caselaw/internal/query"
	"go.uber.org/zap"
)

// Version is the service version reported by the root endpoint.
var Version = "1.0.0"

// Server is the HTTP server for the caselaw API.
type Server struct {
	engine      *query.Engine
	results     *cache.Store[*models.PageResult]
	corpusStore *cache.Store[[]models.Case]
	config      *config.Server
	logger      *zap.Logger
	server      *http.Server
	startedAt   time.Time
}

// NewServer creates a server with the given dependencies. The two cache
// stores are only read for diagnostics; all request traffic goes through the
// engine.
func NewServer(
	engine *query.Engine,
	results *cache.Store[*models.PageResult],
	corpusStore *cache.Store[[]models.Case],
	cfg *config.Server,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine:      engine,
		results:     results,
		corpusStore: corpusStore,
		config:      cfg,
		logger:      logger,
		startedAt:   time.Now(),
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Get("/", s.handleRoot)
	r.Get("/api/health", s.handleHealth)
	r.Get("/search", s.handleSearch)
	r.Get("/filter", s.handleFilter)
	r.Get("/api/cache/stats", s.handleCacheStats)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

type requestIDKey struct{}

// requestID tags every request with a generated ID, echoed in the
// X-Request-ID response header, so log lines from one request can be
// correlated.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// requestIDFrom returns the request's generated ID, or empty outside the
// middleware.
func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
