// Package server provides the HTTP API for rehabflow: plan processing,
// mission and match queries, and plan library search.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/rehabflow/rehabflow/internal/config"
	"github.com/rehabflow/rehabflow/internal/matching"
	"github.com/rehabflow/rehabflow/internal/pipeline"
	"github.com/rehabflow/rehabflow/internal/search"
	"github.com/rehabflow/rehabflow/internal/storage"
)

// WatchService manages intake roots at runtime.
type WatchService interface {
	Directories() []string
	AddDirectory(path string, syncExisting bool) error
	RemoveDirectory(path string) error
}

// Server is the HTTP server for the rehabflow API.
type Server struct {
	pipe    *pipeline.Pipeline
	matcher *matching.Matcher
	store   storage.Storage
	index   *search.PlanIndex
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server

	// Set by EnableIntake; nil when serving without a watcher.
	watch      WatchService
	configPath string
	configMu   sync.Mutex
}

// NewServer creates a server with the given dependencies.
func NewServer(
	pipe *pipeline.Pipeline,
	matcher *matching.Matcher,
	store storage.Storage,
	index *search.PlanIndex,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		pipe:    pipe,
		matcher: matcher,
		store:   store,
		index:   index,
		config:  cfg,
		logger:  logger,
	}
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/plans", s.handleProcessPlan)
	r.Get("/api/v1/plans/{id}", s.handleGetPlan)
	r.Delete("/api/v1/plans/{id}", s.handleDeletePlan)
	r.Post("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/patients/{id}/missions", s.handlePatientMissions)
	r.Get("/api/v1/patients/{id}/matches", s.handlePatientMatches)
	r.Get("/api/v1/intake/directories", s.handleIntakeDirectoriesList)
	r.Post("/api/v1/intake/directories", s.handleIntakeDirectoriesAdd)
	r.Delete("/api/v1/intake/directories", s.handleIntakeDirectoriesRemove)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	return r
}

// EnableIntake exposes runtime management of the given intake watcher.
// configPath, when non-empty, is where directory changes are persisted.
func (s *Server) EnableIntake(watch WatchService, configPath string) {
	s.watch = watch
	s.configPath = configPath
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.routes(),
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
