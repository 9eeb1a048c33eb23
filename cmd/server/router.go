package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/core-api/internal/api"
	apiMiddleware "github.com/phrazzld/core-api/internal/api/middleware"
)

// setupRouter mounts the security chain, the API routes and the static and
// media file trees.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.SecurityStack(app.settings.Security, app.settings.Auth.Token.HeaderScheme)...)

	tokens := app.settings.Auth.Token
	authHandler := api.NewAuthHandler(app.superuser, app.jwtService, app.passwordVerifier, tokens)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, tokens.HeaderScheme)

	r.Get("/health", api.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/me", authHandler.Me)
		})
	})

	storage := app.settings.Storage
	mountFiles(r, storage.StaticURL, storage.StaticRoot)
	mountFiles(r, storage.MediaURL, storage.MediaRoot)

	return r
}

// mountFiles serves root under prefix, which must start and end with "/".
func mountFiles(r chi.Router, prefix, root string) {
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(root)))
	r.Get(prefix+"*", fs.ServeHTTP)
}
