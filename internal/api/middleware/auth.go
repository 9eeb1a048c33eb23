package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/phrazzld/core-api/internal/platform/logger"
	"github.com/phrazzld/core-api/internal/redact"
	"github.com/phrazzld/core-api/internal/service/auth"
)

type claimsContextKey struct{}

// AuthMiddleware provides bearer-token authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	scheme     string
}

// NewAuthMiddleware creates an AuthMiddleware expecting tokens under scheme.
func NewAuthMiddleware(jwtService auth.JWTService, scheme string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		scheme:     scheme,
	}
}

// Authenticate validates the access token in the Authorization header and
// stores its claims in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.ParseAuthorizationHeader(r.Header.Get("Authorization"), m.scheme)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMissingToken):
				respondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			default:
				respondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			}
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				respondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrWrongTokenType),
				errors.Is(err, auth.ErrTokenNotYetValid):
				respondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				logger.FromContext(r.Context()).Error("failed to validate token", "error", redact.Error(err))
				respondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*auth.Claims)
	return claims, ok
}
