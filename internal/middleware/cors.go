package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// localOrigins are the dev servers of the frontend.
var localOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}

// CORS allows a local frontend to call the API with cookies.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   localOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
