package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS returns the permissive CORS middleware used on all routes: every
// origin is allowed and preflight requests short-circuit with the headers
// the hosted frontend sends (authorization, API key, content type). The
// API is bearer-token authenticated, so origin restrictions add nothing
// here.
func CORS() func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "X-Api-Key", "Content-Type"},
		MaxAge:         86400,
	})
	return c.Handler
}
