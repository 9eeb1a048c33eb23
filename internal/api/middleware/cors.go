package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/phrazzld/core-api/internal/config"
	"github.com/phrazzld/core-api/internal/constants"
)

const corsMaxAge = 86400

// CORS builds the cross-origin middleware for policy. Allow-all mode answers
// any origin; allowlist mode answers only the listed origins.
func CORS(policy config.CORSPolicy) func(http.Handler) http.Handler {
	origins := []string{constants.Wildcard}
	if policy.Mode == config.CORSAllowlist {
		origins = append([]string(nil), policy.AllowedOrigins...)
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept", "Authorization", "Content-Type", "X-CSRFToken", "X-Requested-With",
		},
		MaxAge: corsMaxAge,
	})
}
