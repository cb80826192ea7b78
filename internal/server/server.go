// Package server exposes escape computations over HTTP.
//
// Routes:
//
//	POST /v1/escape                 compute (or load) the maps of a grid
//	GET  /v1/escape/{key}           fetch a stored result
//	GET  /v1/escape/{key}/route     one route, ?row=R&col=C
//	POST /v1/escape/{key}/routes    many routes, {"starts": [[r,c], ...]}
//	GET  /healthz                   liveness
//
// Results are addressed by the key returned from POST /v1/escape, the
// SHA-256 of the grid's text form.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/katalvlaran/spacegrid/internal/cache"
	"github.com/katalvlaran/spacegrid/internal/config"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 8 << 20

// shutdownTimeout bounds the graceful drain after the context is done.
const shutdownTimeout = 10 * time.Second

// Server routes HTTP requests to a Results store.
type Server struct {
	results *cache.Results
	logger  *log.Logger
	router  chi.Router
}

// New builds the router. logger receives one line per request.
func New(results *cache.Results, logger *log.Logger) *Server {
	s := &Server{results: results, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Route("/v1/escape", func(r chi.Router) {
		r.Post("/", s.solve)
		r.Route("/{key}", func(r chi.Router) {
			r.Get("/", s.get)
			r.Get("/route", s.route)
			r.Post("/routes", s.routes)
		})
	})
	s.router = r
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on cfg.Addr until ctx is done, then drains open
// requests.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
