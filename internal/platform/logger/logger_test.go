package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/core-api/internal/config"
	"github.com/phrazzld/core-api/internal/platform/logger"
)

// restoreDefault puts the original slog default back after the test.
func restoreDefault(t *testing.T) {
	t.Helper()
	orig := slog.Default()
	t.Cleanup(func() { slog.SetDefault(orig) })
}

func parseLines(t *testing.T, out string) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line: %s", line)
		entries = append(entries, entry)
	}
	return entries
}

func TestSetupConsoleLevel(t *testing.T) {
	restoreDefault(t)

	var buf bytes.Buffer
	l, closer, err := logger.SetupWithWriter(config.LoggingConfig{Level: "info"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	l.Debug("hidden")
	l.Info("shown", "key", "value")

	entries := parseLines(t, buf.String())
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
	assert.Equal(t, "value", entries[0]["key"])
	assert.Same(t, l, slog.Default())
}

func TestSetupErrorFileSink(t *testing.T) {
	restoreDefault(t)

	path := filepath.Join(t.TempDir(), "logs", "errors.log")
	var buf bytes.Buffer
	l, closer, err := logger.SetupWithWriter(config.LoggingConfig{Level: "debug", ErrorFile: path}, &buf)
	require.NoError(t, err)

	l.Debug("debug line")
	l.With("component", "db").Error("connection refused")
	require.NoError(t, closer.Close())

	console := parseLines(t, buf.String())
	assert.Len(t, console, 2)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	file := parseLines(t, string(data))
	require.Len(t, file, 1)
	assert.Equal(t, "connection refused", file[0]["msg"])
	assert.Equal(t, "db", file[0]["component"])
	assert.Equal(t, "ERROR", file[0]["level"])
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	restoreDefault(t)

	_, _, err := logger.SetupWithWriter(config.LoggingConfig{Level: "verbose"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verbose")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := logger.ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	defaultLogger := slog.Default()
	customLogger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	tests := []struct {
		name     string
		ctx      context.Context
		expected *slog.Logger
	}{
		{
			name:     "nil_context_returns_default",
			ctx:      nil,
			expected: defaultLogger,
		},
		{
			name:     "context_without_logger_returns_default",
			ctx:      context.Background(),
			expected: defaultLogger,
		},
		{
			name:     "context_with_logger_returns_context_logger",
			ctx:      logger.WithLogger(context.Background(), customLogger),
			expected: customLogger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := logger.FromContextOrDefault(tt.ctx, defaultLogger)
			assert.Same(t, tt.expected, result)
		})
	}
}

func TestWithLogger(t *testing.T) {
	t.Parallel()

	t.Run("valid_logger", func(t *testing.T) {
		customLogger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		ctx := logger.WithLogger(context.Background(), customLogger)
		assert.Same(t, customLogger, logger.FromContext(ctx))
	})

	t.Run("nil_logger_panics", func(t *testing.T) {
		assert.Panics(t, func() {
			logger.WithLogger(context.Background(), nil)
		})
	})
}
