// Package router sets up the HTTP routes and middleware chain of the
// tweetarchive API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"tweetarchive/internal/handlers"
	"tweetarchive/internal/middleware"
)

// Options carries the optional parts of the middleware chain.
type Options struct {
	// CORSOrigin is the allowed browser origin, "*" for any.
	CORSOrigin string
	// TokenHash is the bcrypt hash guarding writes. Empty leaves them open.
	TokenHash string
	// Limiter rate-limits every request when non-nil.
	Limiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router.
func New(api *handlers.API, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{opts.CORSOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "User-Agent", "Authorization"},
		MaxAge:         600,
	}))

	// Health check, not rate limited.
	r.Get("/health", healthHandler)

	r.Group(func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(opts.Limiter.Middleware)
		}

		r.Get("/tweets", api.ListTweets)
		r.With(middleware.RequireToken(opts.TokenHash)).Patch("/tweets/{id}", api.PatchTweet)
		r.Get("/categories", api.Categories)
		r.Get("/info", api.Info)
	})

	return r
}

// healthHandler responds with a simple JSON health check.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
