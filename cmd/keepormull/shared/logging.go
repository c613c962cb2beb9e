package shared

import (
	"os"
	"time"

	charm "github.com/charmbracelet/log"
	"github.com/rs/zerolog"
)

// SetupLogger configures zerolog with pretty console output
func SetupLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// SetupStructuredLogger configures zerolog for structured (JSON) output
func SetupStructuredLogger(debug bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(os.Stderr).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// SetupServerLogger builds the charmbracelet logger the server and TUI
// layers expect, honouring the configured level name.
func SetupServerLogger(level string) *charm.Logger {
	parsed, err := charm.ParseLevel(level)
	if err != nil {
		parsed = charm.InfoLevel
	}
	return charm.NewWithOptions(os.Stderr, charm.Options{
		Level:           parsed,
		ReportTimestamp: true,
	})
}
