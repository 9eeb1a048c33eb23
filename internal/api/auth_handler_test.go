package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/core-api/internal/api/middleware"
	"github.com/phrazzld/core-api/internal/config"
	"github.com/phrazzld/core-api/internal/constants"
	"github.com/phrazzld/core-api/internal/service/auth"
)

type fixture struct {
	router http.Handler
	jwt    auth.JWTService
	seed   auth.SuperuserSeed
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	policy := config.TokenPolicy{
		AccessTTL:    constants.AccessTokenLifetime,
		RefreshTTL:   constants.RefreshTokenLifetime,
		HeaderScheme: constants.AuthHeaderScheme,
	}
	jwtService, err := auth.NewJWTService(config.AuthConfig{
		SigningKey: config.Secret("an-application-secret-of-sufficient-length"),
		Token:      policy,
	})
	require.NoError(t, err)

	seed, err := auth.NewSuperuserSeed(config.SuperuserConfig{
		Username: "admin",
		Password: config.Secret("admin-password"),
	}, bcrypt.MinCost)
	require.NoError(t, err)

	h := NewAuthHandler(seed, jwtService, auth.NewBcryptVerifier(), policy)
	authMw := middleware.NewAuthMiddleware(jwtService, policy.HeaderScheme)

	r := chi.NewRouter()
	r.Get("/health", Health)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/refresh", h.RefreshToken)
	r.With(authMw.Authenticate).Get("/me", h.Me)

	return fixture{router: r, jwt: jwtService, seed: seed}
}

func (f fixture) do(t *testing.T, method, path string, body interface{}, header string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if header != "" {
		req.Header.Set("Authorization", header)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/health", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestLogin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{"valid credentials", LoginRequest{Username: "admin", Password: "admin-password"}, http.StatusOK},
		{"wrong password", LoginRequest{Username: "admin", Password: "nope"}, http.StatusUnauthorized},
		{"wrong username", LoginRequest{Username: "root", Password: "admin-password"}, http.StatusUnauthorized},
		{"missing fields", LoginRequest{Username: "admin"}, http.StatusBadRequest},
		{"malformed body", "not-an-object", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/auth/login", tt.body, "")
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantStatus != http.StatusOK {
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp.Error)
				return
			}

			var resp AuthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, f.seed.ID, resp.UserID)
			assert.Equal(t, "Bearer", resp.TokenType)
			assert.NotEmpty(t, resp.AccessToken)
			assert.NotEmpty(t, resp.RefreshToken)

			expires, err := time.Parse(time.RFC3339, resp.ExpiresAt)
			require.NoError(t, err)
			assert.WithinDuration(t, time.Now().Add(constants.AccessTokenLifetime), expires, time.Minute)
		})
	}
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	login := f.do(t, http.MethodPost, "/auth/login", LoginRequest{Username: "admin", Password: "admin-password"}, "")
	require.Equal(t, http.StatusOK, login.Code)
	var tokens AuthResponse
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &tokens))

	rec := f.do(t, http.MethodPost, "/auth/refresh", RefreshTokenRequest{RefreshToken: tokens.RefreshToken}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var refreshed AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refreshed))
	assert.Equal(t, f.seed.ID, refreshed.UserID)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token is not a refresh token.
	rec = f.do(t, http.MethodPost, "/auth/refresh", RefreshTokenRequest{RefreshToken: tokens.AccessToken}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPost, "/auth/refresh", RefreshTokenRequest{}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMe(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	token, err := f.jwt.GenerateToken(context.Background(), f.seed.ID)
	require.NoError(t, err)

	rec := f.do(t, http.MethodGet, "/me", nil, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)

	var me MeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, f.seed.ID, me.UserID)
	assert.Equal(t, "admin", me.Username)

	rec = f.do(t, http.MethodGet, "/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
