// Package logging provides structured logging for brandmap using zerolog.
// Console output is used when stderr is a terminal and JSON otherwise.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("collection", "brands").Int("count", 12).Msg("Imported raw documents")
//
//	ctx := logging.WithOperation(context.Background(), "normalize")
//	logging.FromContext(ctx).Debug().Str("id", id.Hex()).Msg("Replaced brand")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger = NewLoggerFromConfig(&Config{
	Level:   getEnvOrDefault("LOG_LEVEL", "info"),
	Format:  getEnvOrDefault("LOG_FORMAT", "auto"),
	Output:  "stderr",
	NoColor: os.Getenv("NO_COLOR") != "",
})

// Default returns the process-wide logger used by packages that were not
// handed one explicitly.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// NewNopLogger creates a logger that discards all output.
func NewNopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
