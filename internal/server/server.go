// package server contains middleware & handlers for the pet store HTTP API
package server

import (
	"net/http"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, request ids, panic recovery, rate limiting, etc.
type Middleware func(http.Handler) http.Handler

// Route is a single method and path pattern served by a [Handler].
//
// Paths use gorilla/mux patterns, so "/pet_store/{id}" exposes the id through [mux.Vars].
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// Handler defines the interface for groups of HTTP endpoints.
// Implementations return their routes so the [Router] can register them with middleware applied.
type Handler interface {
	Routes() []Route // Routes returns the method, path pattern and handler of each endpoint
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	// Use adds middleware to the router's middleware stack
	Use(middleware ...Middleware)
	// Handle registers a handler for the specified method and path
	Handle(method, path string, handler http.Handler)
	// Handler registers every route of a Handler implementation
	Handler(handler Handler)
	// ServeHTTP implements http.Handler for the entire router
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}
