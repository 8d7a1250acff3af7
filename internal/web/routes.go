package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/face-console/internal/web/handlers"
	"github.com/kozaktomas/face-console/internal/web/middleware"
)

func (s *Server) setupRoutes() {
	// Create handlers
	reconcileHandler := handlers.NewReconcileHandler(s.reconciler)
	recognizeHandler := handlers.NewRecognizeHandler(s.reconciler, s.config.Reconcile.UseRoster)
	consoleHandler := handlers.NewConsoleHandler()

	// Health check (no console client needed)
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Pure transform, works without a reachable backend
		r.Post("/reconcile", reconcileHandler.Reconcile)

		// Routes that talk to the console backend
		r.Group(func(r chi.Router) {
			r.Use(middleware.WithConsoleClient(s.client))

			r.Post("/recognize/upload", recognizeHandler.Upload)
			r.Post("/recognize/camera", recognizeHandler.Camera)

			r.Get("/statistics", consoleHandler.Statistics)
			r.Get("/users", consoleHandler.Users)
		})
	})
}
