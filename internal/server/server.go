// package server contains the router, middleware and OAuth callback server used by the login flow
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zembrodt/showtunes-sub000/internal/shared"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler is an [http.Handler] that knows the paths it serves.
type Handler interface {
	http.Handler
	Routes() []string
}

// Router registers handlers and applies middleware.
type Router interface {
	Use(middleware ...Middleware)
	Handle(method, path string, handler http.Handler)
	Handler(handler Handler)
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}

// Server is a short-lived local HTTP server.
type Server struct {
	srv    *http.Server
	ln     net.Listener
	errs   chan error
	logger *log.Logger
}

func New(addr string, handler http.Handler, logger *log.Logger) *Server {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		errs:   make(chan error, 1),
		logger: shared.WithLogger(logger, "component", "server"),
	}
}

// Start binds the address and serves in the background. Bind errors are returned directly.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		s.logger.Debug("listening", "addr", ln.Addr().String())
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errs <- err
		}
		close(s.errs)
	}()
	return nil
}

// Addr returns the bound address, which differs from the configured one when port 0 was used.
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.srv.Addr
	}
	return s.ln.Addr().String()
}

// Errors receives a serve error, if any, and is closed when the server stops.
func (s *Server) Errors() <-chan error {
	return s.errs
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
