package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. Development gets pretty console
// output, everything else gets JSON lines.
func Init(env string) {
	var w io.Writer = os.Stdout
	if env == "development" || env == "dev" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(w).With().
		Timestamp().
		Str("service", "secreto-backend").
		Logger()
}

// Get returns the global logger.
func Get() *zerolog.Logger {
	return &log.Logger
}
