package middleware

import (
	"net/http"
	"time"

	"github.com/rs/cors"
)

// CORS allows the browser client at allowedOrigins to call the API.
// An empty list disables cross-origin access, since rs/cors treats it as "*".
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "Retry-After", "Location"},
		AllowCredentials: false,
		MaxAge:           int((10 * time.Minute).Seconds()),
	})
	return c.Handler
}
