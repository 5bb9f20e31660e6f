package rest

import (
	"context"
	"fmt"
	"net/http"

	core_ports "apt-sync-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	httpServer *http.Server
	logger     core_ports.LoggerPort
}

func NewServer(port string, handlers *SyncHandlers, baseLogger core_ports.LoggerPort) *Server {
	r := chi.NewRouter()

	r.Use(LoggerMiddleware(baseLogger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handlers.HandleHealthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/sync", func(r chi.Router) {
			r.Post("/transactions/recent", handlers.HandleSyncRecentTransactions)
			r.Post("/transactions/full", handlers.HandleSyncFullTransactions)
			r.Post("/fees", handlers.HandleSyncManagementFees)
		})
		r.Post("/discover/complexes", handlers.HandleDiscoverComplexes)
		r.Post("/reconcile/complexes", handlers.HandleReconcileComplexes)
		r.Post("/enrich/complexes", handlers.HandleEnrichComplexes)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

// Start runs the HTTP server until it errors or Stop is called.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_ports.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
