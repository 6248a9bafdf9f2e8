package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS sets "Access-Control-Allowed" style headers on a response for the origins provided.
// The handler including this middleware must also handle the http.MethodOptions method
// and not just the HTTP method it's designed for.
//
// If no origins are provided, NoopAdapter returns and this middleware does nothing.
func CORS(origins ...string) Adapter {
	if len(origins) == 0 {
		return NoopAdapter
	}

	return handlers.CORS(
		handlers.AllowedHeaders([]string{
			"Accept",
			"Accept-Language",
			"Content-Type",
			"X-CSRF-Token",
		}),
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{
			http.MethodDelete,
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
			http.MethodPost,
			http.MethodPut,
		}),
		handlers.AllowCredentials(),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)
}
