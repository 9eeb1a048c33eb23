package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/core-api/internal/config"
)

func testEnv(debug bool) map[string]string {
	vars := map[string]string{
		"DEFAULT_DB":                 "sqlite",
		"SECRET_KEY":                 "test-secret-key-that-is-long-enough-for-hmac",
		"DEFAULT_SUPERUSER_USERNAME": "admin",
		"DEFAULT_SUPERUSER_PASSWORD": "admin-password",
		"DB_NAME":                    "db.sqlite3",
		"DB_USER":                    "core_user",
		"DB_PASSWORD":                "db-password",
		"DB_HOST":                    "localhost",
		"DB_PORT":                    "5432",
		"EMAIL_HOST":                 "smtp.example.com",
		"EMAIL_PORT":                 "587",
		"EMAIL_HOST_USER":            "mailer@example.com",
		"EMAIL_HOST_PASSWORD":        "mail-password",
		"CLOUDINARY_CLOUD_NAME":      "demo",
		"CLOUDINARY_API_NAME":        "123456789012345",
		"CLOUDINARY_API_SECRET":      "cdn-secret",
	}
	if debug {
		vars["DEBUG"] = "true"
	} else {
		vars["ALLOWED_HOSTS"] = "api.example.com"
		vars["CORS_ALLOWED_ORIGINS"] = "https://app.example.com"
	}
	return vars
}

func newTestApp(t *testing.T, debug bool) *application {
	t.Helper()

	settings, err := config.Resolve(config.NewSnapshot(testEnv(debug)), t.TempDir())
	require.NoError(t, err)

	log := slog.New(slog.NewJSONHandler(io.Discard, nil))
	app, err := buildApplication(settings, log, bcrypt.MinCost)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	return app
}

func TestBuildApplication(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, true)

	assert.Equal(t, "smtp.example.com:587", app.mailer.Addr())
	assert.Equal(t, "demo", app.mediaStore.CloudName())
	assert.Equal(t, "admin", app.superuser.Username)
	assert.NoError(t, app.passwordVerifier.Compare(app.superuser.PasswordHash, "admin-password"))
}

func TestBuildApplicationRejectsUnsupportedMailBackend(t *testing.T) {
	t.Parallel()

	settings, err := config.Resolve(config.NewSnapshot(testEnv(true)), t.TempDir())
	require.NoError(t, err)
	settings.Mail.Backend = "console"

	_, err = buildApplication(settings, slog.New(slog.NewJSONHandler(io.Discard, nil)), bcrypt.MinCost)
	assert.Error(t, err)
}

func TestRouterDevelopment(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, true)
	router := app.setupRouter()

	staticRoot := app.settings.Storage.StaticRoot
	require.NoError(t, os.MkdirAll(staticRoot, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staticRoot, "app.css"), []byte("body{}"), 0o644))

	tests := []struct {
		name       string
		method     string
		path       string
		host       string
		wantStatus int
		wantBody   string
	}{
		{"health on any host", http.MethodGet, "/health", "anything.local", http.StatusOK, `"status":"ok"`},
		{"static file", http.MethodGet, "/static/app.css", "localhost", http.StatusOK, "body{}"},
		{"missing media", http.MethodGet, "/media/none.png", "localhost", http.StatusNotFound, ""},
		{"me requires token", http.MethodGet, "/api/me", "localhost", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Host = tt.host
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRouterDevelopmentCrossOriginLogin(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, true)
	router := app.setupRouter()

	body := strings.NewReader(`{"username":"admin","password":"admin-password"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Host = "localhost:8000"
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"access_token"`)
	assert.Contains(t, []string{"*", "http://localhost:3000"}, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterProduction(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, false)
	router := app.setupRouter()

	t.Run("unknown host rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Host = "evil.example"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("plain http redirected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Host = "api.example.com"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "https://api.example.com/health", rec.Header().Get("Location"))
	})

	t.Run("proxied https served", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Host = "api.example.com"
		req.Header.Set("X-Forwarded-Proto", "https")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("untrusted origin cannot log in", func(t *testing.T) {
		body := strings.NewReader(`{"username":"admin","password":"admin-password"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
		req.Host = "api.example.com"
		req.Header.Set("X-Forwarded-Proto", "https")
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("trusted origin logs in", func(t *testing.T) {
		body := strings.NewReader(`{"username":"admin","password":"admin-password"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
		req.Host = "api.example.com"
		req.Header.Set("X-Forwarded-Proto", "https")
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestServeShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, true)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, ln, app.setupRouter()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout):
		t.Fatal("server did not shut down")
	}
}
