package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lexkit/lexsync/lifecycle"
)

// Server exposes the lifecycle dispatcher over HTTP alongside health and
// metrics endpoints.
type Server struct {
	log     zerolog.Logger
	handler *lifecycle.Handler
}

func New(handler *lifecycle.Handler, log zerolog.Logger) *Server {
	return &Server{
		log:     log.With().Str("component", "server").Logger(),
		handler: handler,
	}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/v1/lifecycle", s.lifecycle)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, listen string) error {
	srv := &http.Server{
		Addr:              listen,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("listen", listen).Msg("serving lifecycle requests")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) lifecycle(w http.ResponseWriter, r *http.Request) {
	var event lifecycle.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		s.log.Warn().Err(err).Msg("rejecting malformed lifecycle request")
		http.Error(w, "malformed lifecycle event", http.StatusBadRequest)
		return
	}

	response := s.handler.Handle(r.Context(), event)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.log.Error().Err(err).Msg("writing lifecycle response")
	}
}
