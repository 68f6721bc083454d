package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type Server struct {
	logger  *slog.Logger
	handler *Handler
	addr    string
}

func NewServer(logger *slog.Logger, handler *Handler, addr string) *Server {
	return &Server{
		logger:  logger,
		handler: handler,
		addr:    addr,
	}
}

// Start brings the API up and returns a cleanup func that drains in-flight
// requests.
func (s *Server) Start(ctx context.Context) (func() error, error) {
	mux := http.NewServeMux()
	s.handler.Register(mux)

	server := &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	go func() {
		s.logger.Info("API server listening", "addr", s.addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("API server failed", "error", err)
		}
	}()

	cleanup := func() error {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	}

	return cleanup, nil
}
