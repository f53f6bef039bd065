package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/turtacn/AnswerKey-Intelligence/internal/config"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/monitoring/logging"
)

// Server wraps http.Server with lifecycle management around the route
// tree.
type Server struct {
	srv    *http.Server
	logger logging.Logger
	port   int
}

// NewServer builds the HTTP server from config and an assembled handler.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger logging.Logger) *Server {
	return &Server{
		logger: logger,
		port:   cfg.Port,
		srv: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Start blocks serving requests until Stop is called or the listener
// fails. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("http server listening", logging.Int("port", s.port))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Stop drains in-flight requests until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}

// Handler exposes the underlying handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}
