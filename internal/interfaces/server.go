package interfaces

import (
	"context"
	"net/http"
)

// Server interface defines the methods for a server implementation.
type Server interface {
	AddRoute(method, route string, handler http.Handler) error
	Use(middlewares ...func(http.Handler) http.Handler)
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}
