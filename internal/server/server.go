// Package server runs the HTTP listener and shuts it and its dependencies
// down in order.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// CloseFunc releases a dependency after the listener stops.
type CloseFunc func(ctx context.Context) error

type closer struct {
	name string
	fn   CloseFunc
}

// Server wraps http.Server with ordered shutdown.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	log             *slog.Logger

	mu      sync.Mutex
	closers []closer
}

func New(addr string, handler http.Handler, shutdownTimeout time.Duration, log *slog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
		log:             log,
	}
}

// OnShutdown registers fn to run after the listener stops. Closers run in
// reverse registration order.
func (s *Server) OnShutdown(name string, fn CloseFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closers = append(s.closers, closer{name: name, fn: fn})
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts on ln until ctx is cancelled, then drains in-flight requests
// and runs the shutdown hooks.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	serveErr := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.log.Info("shutdown requested")
		return s.shutdown()
	}
}

func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.httpServer.SetKeepAlivesEnabled(false)
	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.log.Error("http shutdown", "error", err)
		errs = append(errs, fmt.Errorf("http: %w", err))
	}

	s.mu.Lock()
	closers := s.closers
	s.mu.Unlock()

	for i := len(closers) - 1; i >= 0; i-- {
		c := closers[i]
		if err := c.fn(ctx); err != nil {
			s.log.Error("shutdown hook failed", "name", c.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
			continue
		}
		s.log.Debug("shutdown hook done", "name", c.name)
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.log.Info("server stopped")
	return nil
}
