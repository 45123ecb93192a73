package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/haguru/bugtracker/internal/models/dto"
)

var (
	ReadTimeout  = 10 * time.Second
	WriteTimeout = 10 * time.Second
	IdleTimeout  = 30 * time.Second
)

type Server struct {
	Port   string
	Host   string
	server *http.Server
	router *mux.Router
	Logger interfaces.Logger
}

// NewServer creates a new Server instance with the specified host and port.
func NewServer(host, port string, logger interfaces.Logger) *Server {
	router := mux.NewRouter()
	router.NotFoundHandler = jsonStatus(http.StatusNotFound, "Not found")
	router.MethodNotAllowedHandler = jsonStatus(http.StatusMethodNotAllowed, "Method not allowed")

	server := &http.Server{
		Addr:         host + ":" + port,
		Handler:      router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	return &Server{
		Host:   host,
		Port:   port,
		server: server,
		router: router,
		Logger: logger,
	}
}

// AddRoute registers handler for method and route. Route may contain
// gorilla/mux path variables such as {userId}. Each route is traced with otelhttp.
func (s *Server) AddRoute(method, route string, handler http.Handler) error {
	if route == "" || handler == nil {
		return fmt.Errorf("route and handler are required")
	}
	if err := s.router.Handle(route, otelhttp.NewHandler(handler, method+" "+route)).Methods(method).GetError(); err != nil {
		return fmt.Errorf("failed to add route %s %s: %w", method, route, err)
	}
	s.Logger.Info("Route added", "method", method, "route", route)
	return nil
}

// Use applies middlewares to every matched route, in order.
func (s *Server) Use(middlewares ...func(http.Handler) http.Handler) {
	for _, mw := range middlewares {
		s.router.Use(mux.MiddlewareFunc(mw))
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server. It returns nil after Shutdown.
func (s *Server) ListenAndServe() error {
	s.Logger.Info("Starting server", "host", s.Host, "port", s.Port)
	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.Logger.Error("Failed to start server", "error", err)
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("Shutting down server")
	return s.server.Shutdown(ctx)
}

func jsonStatus(status int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(dto.ErrorResponseDTO{Error: message})
	})
}
