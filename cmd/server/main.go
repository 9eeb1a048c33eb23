// Package main implements the entry point for the core API server. It
// resolves settings from the environment, wires the database, mail, media
// and token services they describe, and serves HTTP until signalled.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/core-api/internal/config"
	"github.com/phrazzld/core-api/internal/platform/logger"
)

func main() {
	envFile := flag.String("env-file", ".env", "path to a KEY=VALUE file providing environment defaults")
	addr := flag.String("addr", ":8000", "HTTP listen address")
	flag.Parse()

	if err := run(*envFile, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "core-api: %v\n", err)
		os.Exit(1)
	}
}

func run(envFile, addr string) error {
	settings, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, closer, err := logger.Setup(settings.Logging)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	defer closer.Close()

	log.Info("settings resolved",
		"debug", settings.Debug,
		"database_engine", settings.Database.Engine,
		"allowed_hosts", settings.Security.AllowedHosts,
		"cors_mode", settings.Security.CORS.Mode.String(),
		"log_level", settings.Logging.Level)

	app, err := newApplication(settings, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx, addr)
}
