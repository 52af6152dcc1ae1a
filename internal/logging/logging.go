// Package logging provides the shared zerolog logger.
//
// Diagnostics always go to stderr so that stdout carries nothing but the
// report and stays safe to pipe.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger *zerolog.Logger

// Init configures the global logger with the given level
// ("debug", "info", "warn", "error").
func Init(level string) {
	var logLevel zerolog.Level

	switch strings.ToLower(level) {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.WarnLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}

	instance := zerolog.New(writer).With().Timestamp().Logger().Level(logLevel)

	logger = &instance
}

// Get returns the global logger, or a discarding logger if Init has not
// been called (keeps library use and tests quiet).
func Get() *zerolog.Logger {
	if logger == nil {
		instance := zerolog.New(io.Discard)
		logger = &instance
	}

	return logger
}
