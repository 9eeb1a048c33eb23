package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/core-api/internal/config"
	"github.com/phrazzld/core-api/internal/platform/database"
	"github.com/phrazzld/core-api/internal/platform/mail"
	"github.com/phrazzld/core-api/internal/platform/media"
	"github.com/phrazzld/core-api/internal/service/auth"
)

// application holds the collaborators built from the resolved settings.
type application struct {
	settings *config.Settings
	logger   *slog.Logger

	db         *sql.DB
	mailer     *mail.Sender
	mediaStore *media.Store

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	superuser        auth.SuperuserSeed
}

// newApplication builds every collaborator without contacting any remote
// service. Reachability problems surface on first use.
func newApplication(settings *config.Settings, logger *slog.Logger) (*application, error) {
	return buildApplication(settings, logger, bcrypt.DefaultCost)
}

func buildApplication(settings *config.Settings, logger *slog.Logger, hashCost int) (*application, error) {
	app := &application{
		settings:         settings,
		logger:           logger,
		passwordVerifier: auth.NewBcryptVerifier(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(settings.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"access_ttl", settings.Auth.Token.AccessTTL.String(),
		"refresh_ttl", settings.Auth.Token.RefreshTTL.String())

	app.superuser, err = auth.NewSuperuserSeed(settings.Superuser, hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare superuser: %w", err)
	}

	app.db, err = database.Open(settings.Database, settings.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	app.mailer, err = mail.NewSender(settings.Mail)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize mail transport: %w", err)
	}

	app.mediaStore, err = media.NewStore(settings.Media)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize media store: %w", err)
	}

	logger.Info("application initialized",
		"mail_relay", app.mailer.Addr(),
		"media_cloud", app.mediaStore.CloudName())
	return app, nil
}

// Run serves HTTP on addr until ctx is cancelled.
func (app *application) Run(ctx context.Context, addr string) error {
	if err := database.Ping(ctx, app.db, app.settings.Database); err != nil {
		// The database may come up after the server.
		app.logger.Warn("database not reachable at startup", "error", err)
	}

	if err := app.startHTTPServer(ctx, addr, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
