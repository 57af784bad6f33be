// ABOUTME: HTTP JSON API over the tracker for the signed-in user.
// ABOUTME: Routes today's workout, progress, weekly goal, completions, and metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/harperreed/fitday/internal/metrics"
	"github.com/harperreed/fitday/internal/tracker"
	"github.com/rs/zerolog"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	tracker *tracker.Tracker
	logger  zerolog.Logger
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(tr *tracker.Tracker, logger zerolog.Logger) *Server {
	s := &Server{
		tracker: tr,
		logger:  logger.With().Str("component", "server").Logger(),
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.logger))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/workout/today", s.handleTodayWorkout)
		r.Get("/progress", s.handleProgress)
		r.Get("/goal", s.handleGetGoal)
		r.Put("/goal", s.handlePutGoal)
		r.Get("/completions", s.handleListCompletions)
		r.Post("/completions", s.handleRecordCompletion)
	})

	s.router.Handle("/metrics", metrics.Handler())
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpSrv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("listening")
		errCh <- httpSrv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info().Msg("server stopped")
	return nil
}
