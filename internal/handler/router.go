// Package handler provides HTTP routing for the package catalog API.
package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/graphql-go/graphql"
	gqlhandler "github.com/graphql-go/handler"
	"github.com/rs/zerolog"
)

// Router assembles the HTTP surface: the single GraphQL endpoint plus a
// health check. Authorization gating happens inside the resolvers; the
// middleware here only establishes the caller's identity.
type Router struct {
	graphqlHandler http.Handler
	authMiddleware func(http.Handler) http.Handler
	logger         zerolog.Logger
}

// RouterConfig contains configuration for the router.
type RouterConfig struct {
	Schema         *graphql.Schema
	AuthMiddleware func(http.Handler) http.Handler
	GraphiQL       bool
	Logger         zerolog.Logger
}

// NewRouter creates a new Router.
func NewRouter(config RouterConfig) *Router {
	return &Router{
		graphqlHandler: gqlhandler.New(&gqlhandler.Config{
			Schema:   config.Schema,
			Pretty:   true,
			GraphiQL: config.GraphiQL,
		}),
		authMiddleware: config.AuthMiddleware,
		logger:         config.Logger.With().Str("component", "router").Logger(),
	}
}

// Handler returns the main HTTP handler.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(rt.requestLogger)

	// Health check (no auth)
	r.Get("/health", rt.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(rt.authMiddleware)
		r.Handle("/graphql", rt.graphqlHandler)
	})

	return r
}

// handleHealth handles health check requests.
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// requestLogger logs one line per request at debug level.
func (rt *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		rt.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}
