// Package logger provides structured logging for the application.
//
// It uses log/slog with JSON output. Setup builds a console handler at the
// configured level and, when the settings name an error file, fans ERROR
// records out to that file as well.
package logger
