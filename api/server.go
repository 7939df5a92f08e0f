package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Landon87/florida-crypto-lottery/domain/interfaces"
	"github.com/Landon87/florida-crypto-lottery/infrastructure/observability"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// Server exposes the raffle service over HTTP
type Server struct {
	raffle  interfaces.RaffleService
	metrics *observability.MetricsProvider
	http    *http.Server
}

// NewServer creates a new API server listening on the given address
func NewServer(addr string, raffle interfaces.RaffleService, metrics *observability.MetricsProvider) *Server {
	s := &Server{
		raffle:  raffle,
		metrics: metrics,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/round", s.handleGetRound)
		r.Post("/round/entries", s.handleEnter)
		r.Post("/upkeep", s.handlePerformUpkeep)
		r.Get("/draws", s.handleListDraws)
	})

	s.http = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

// Handler exposes the router, used by tests
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start runs the HTTP server until it is shut down
func (s *Server) Start() error {
	log.WithField("addr", s.http.Addr).Info("HTTP API listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
