package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/amaumene/bingebuddy/internal/api/handlers"
	"github.com/amaumene/bingebuddy/internal/api/middleware"
	"github.com/amaumene/bingebuddy/internal/browse"
	"github.com/amaumene/bingebuddy/internal/config"
	"github.com/amaumene/bingebuddy/internal/models"
	"github.com/amaumene/bingebuddy/internal/normalize"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Dependencies are the components served over HTTP
type Dependencies struct {
	DB        *models.Database
	Sessions  *browse.Manager
	Source    normalize.Source
	Settings  browse.Settings
	Assistant handlers.Replier
}

// Server represents the HTTP server
type Server struct {
	server *http.Server
	deps   Dependencies
	logger *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, deps Dependencies, logger *logrus.Logger) *Server {
	s := &Server{
		deps:   deps,
		logger: logger,
	}

	mux := http.NewServeMux()
	s.setupRoutes(mux)

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      middleware.Logging(mux, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the root handler, middleware included
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux) {
	d := s.deps

	// Health, status and metrics
	mux.Handle("/health", handlers.NewHealthHandler(s.logger))
	mux.Handle("/status", handlers.NewStatusHandler(d.DB, d.Sessions, s.logger))
	mux.Handle("GET /metrics", promhttp.Handler())

	// Browse
	browseHandler := handlers.NewBrowseHandler(d.Sessions, d.Source, d.Settings, s.logger)
	mux.HandleFunc("/api/browse", browseHandler.Browse)
	mux.HandleFunc("POST /api/browse/sessions", browseHandler.Create)
	mux.HandleFunc("GET /api/browse/sessions/{id}", browseHandler.Get)
	mux.HandleFunc("DELETE /api/browse/sessions/{id}", browseHandler.Close)
	mux.HandleFunc("PUT /api/browse/sessions/{id}/query", browseHandler.SetQuery)
	mux.HandleFunc("PUT /api/browse/sessions/{id}/criteria", browseHandler.SetCriteria)
	mux.HandleFunc("POST /api/browse/sessions/{id}/more", browseHandler.LoadMore)

	// Watchlist
	watchlistHandler := handlers.NewWatchlistHandler(d.DB, s.logger)
	mux.HandleFunc("GET /api/watchlist", watchlistHandler.List)
	mux.HandleFunc("POST /api/watchlist", watchlistHandler.Add)
	mux.HandleFunc("PATCH /api/watchlist/{key}", watchlistHandler.UpdateStatus)
	mux.HandleFunc("DELETE /api/watchlist/{key}", watchlistHandler.Delete)

	// Subscriptions
	subscriptionsHandler := handlers.NewSubscriptionsHandler(d.DB, s.logger)
	mux.HandleFunc("GET /api/subscriptions", subscriptionsHandler.List)
	mux.HandleFunc("POST /api/subscriptions", subscriptionsHandler.Save)
	mux.HandleFunc("GET /api/subscriptions/plans", subscriptionsHandler.Plans)
	mux.HandleFunc("POST /api/subscriptions/{id}/toggle", subscriptionsHandler.Toggle)
	mux.HandleFunc("DELETE /api/subscriptions/{id}", subscriptionsHandler.Delete)

	// Continue watching
	continueHandler := handlers.NewContinueHandler(d.DB, s.logger)
	mux.HandleFunc("GET /api/continue", continueHandler.List)
	mux.HandleFunc("PUT /api/continue", continueHandler.Upsert)
	mux.HandleFunc("DELETE /api/continue/{id}", continueHandler.Delete)

	// Chat
	mux.Handle("/api/chat", handlers.NewChatHandler(d.Assistant, s.logger))
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
