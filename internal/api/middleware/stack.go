package middleware

import (
	"net/http"

	"github.com/phrazzld/core-api/internal/config"
)

// SecurityStack returns the policy middleware in the order the request chain
// runs them: host check, TLS redirect, CORS, trusted-origin check.
func SecurityStack(policy config.SecurityPolicy, tokenScheme string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		AllowedHosts(policy.AllowedHosts),
		RedirectToTLS(policy),
		CORS(policy.CORS),
		TrustedOrigins(policy, tokenScheme),
	}
}
