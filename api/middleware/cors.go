package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// The API only ever faces local display shells, so the allowed origins stay
// on the loopback.
var defaultCORSOrigins = []string{
	"http://localhost:8470",
	"http://127.0.0.1:8470",
	"http://localhost:3000", // local UI dev server
}

// CORS returns middleware that applies the API's allowed origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Acro-User", "X-Acro-Project", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
