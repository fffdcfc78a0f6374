package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/petstore/internal/services"
	"github.com/desertthunder/petstore/internal/shared"
)

// ShutdownTimeout bounds how long [Server.Run] waits for in-flight requests after its context ends.
const ShutdownTimeout = 5 * time.Second

// Server serves the pet store API.
type Server struct {
	http   *http.Server
	logger *log.Logger
}

// NewRouter builds the API router: middleware in the order request id, recovery, access log, rate limit,
// then the health and pet store handlers.
func NewRouter(service services.Service, conf shared.ServerConfig, logger *log.Logger) *BasicRouter {
	router := NewBasicRouter()
	router.Use(
		RequestID(),
		Recover(logger),
		Logger(logger),
		RateLimit(conf.RateLimit, conf.RateBurst),
	)
	router.Handler(HealthHandler{})
	router.Handler(NewPetStoreHandler(service, logger))
	return router
}

// NewServer creates a [Server] listening on conf's address.
func NewServer(service services.Service, conf shared.ServerConfig, logger *log.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:              conf.Addr(),
			Handler:           NewRouter(service, conf, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}

// Run listens on the configured address and serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("server listening", "addr", ln.Addr().String())

	serverErr := make(chan error, 1)
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
