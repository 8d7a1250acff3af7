package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/kozaktomas/face-console/internal/config"
	"github.com/kozaktomas/face-console/internal/faceapi"
	"github.com/kozaktomas/face-console/internal/recognition"
	"github.com/kozaktomas/face-console/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	config     *config.Config
	router     *chi.Mux
	httpServer *http.Server
	client     *faceapi.Client
	reconciler *recognition.Reconciler
	logger     *slog.Logger
}

// NewServer creates a new web server
func NewServer(cfg *config.Config, client *faceapi.Client, rc *recognition.Reconciler, logger *slog.Logger) *Server {
	r := chi.NewRouter()

	// Recognize requests may fetch the roster after the recognition call.
	requestTimeout := cfg.Console.Timeout
	if requestTimeout <= 0 {
		requestTimeout = faceapi.DefaultTimeout
	}
	requestTimeout *= 2

	s := &Server{
		config:     cfg,
		router:     r,
		client:     client,
		reconciler: rc,
		logger:     logger,
	}

	// Set up middleware stack
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(requestTimeout))
	r.Use(middleware.CORS(cfg.Web.AllowedOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RequestLogger(logger))

	// Set up routes
	s.setupRoutes()

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting web server", "addr", s.httpServer.Addr, "console", s.client.URL)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down web server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router returns the chi router for testing
func (s *Server) Router() *chi.Mux {
	return s.router
}
