package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"netdiag/internal/models"
)

// Server exposes the diagnostics history as a small JSON API while a
// telemetry run is in progress.
type Server struct {
	store models.Store
	addr  string
	log   *zap.SugaredLogger
	srv   *http.Server
}

// New creates a new web server
func New(store models.Store, addr string, log *zap.SugaredLogger) *Server {
	return &Server{store: store, addr: addr, log: log}
}

// Router builds the API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/api/recent", s.handleRecent)
	r.Get("/api/stats", s.handleStats)
	return r
}

// Start runs the server until Stop is called.
func (s *Server) Start() error {
	s.srv = &http.Server{Addr: s.addr, Handler: s.Router()}
	s.log.Infow("web server starting", "addr", s.addr)
	if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
