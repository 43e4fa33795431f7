// Package web serves the explorer page over HTTP.
package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/ContentExplorer/internal/config"
	"github.com/JonMunkholm/ContentExplorer/internal/core"
	webmw "github.com/JonMunkholm/ContentExplorer/internal/web/middleware"
	"github.com/JonMunkholm/ContentExplorer/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server for the explorer. It holds one snapshot for its
// whole lifetime and never modifies it.
type Server struct {
	snapshot *core.Snapshot
	cfg      *config.Config
	router   *chi.Mux
	server   *http.Server

	// render builds the page component; templates.Dashboard unless a
	// test swaps it.
	render func(*core.Snapshot) templ.Component
}

// NewServer creates a Server for snap.
func NewServer(snap *core.Snapshot, cfg *config.Config) *Server {
	s := &Server{
		snapshot: snap,
		cfg:      cfg,
		router:   chi.NewRouter(),
		render:   templates.Dashboard,
	}
	s.setupMiddleware()
	s.setupRoutes()
	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(webmw.Logger(s.snapshot.ID.String()))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleDashboard)
}

// Start listens on the configured address and blocks until the server
// stops. After Shutdown, including one that ran before Start, it returns
// http.ErrServerClosed.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
