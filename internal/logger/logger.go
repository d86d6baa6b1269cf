package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/config"
)

// Init configures the global zerolog logger: console output in development,
// JSON everywhere else.
func Init(cfg *config.Config) {
	var out io.Writer = os.Stdout
	if !cfg.IsProduction() {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
		log.Warn().Str("loglevel", cfg.LogLevel).Msg("invalid log level, using info")
	}
	zerolog.SetGlobalLevel(level)
}
