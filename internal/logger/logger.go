package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds a structured logger writing to stderr. The level string is
// case-insensitive; unknown values fall back to info.
func New(level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(os.Stderr).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "sales-insights").
		Logger()
}
