package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/eurenemendes/ecofeira-backend/pkg/config"
)

var defaultCORSOrigins = []string{
	"http://localhost:5173", // local dev
	"https://ecofeira.vercel.app",
}

// CORS returns middleware that applies the API's allowed origin policy.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", SessionHeader, "X-Requested-With"},
		ExposedHeaders:   []string{SessionHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler
}
