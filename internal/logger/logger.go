package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// New creates a zerolog logger writing JSON to stdout, or a console writer when pretty is set.
func New(level string, pretty bool) (zerolog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	var out io.Writer = os.Stdout
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

func parseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, errors.Errorf("unknown log level: %s", level)
	}
}

// GooseLogger adapts a zerolog logger to goose's Logger interface.
type GooseLogger struct {
	Logger zerolog.Logger
}

func (l GooseLogger) Printf(format string, v ...interface{}) {
	l.Logger.Info().Msgf(strings.TrimSpace(format), v...)
}

func (l GooseLogger) Fatalf(format string, v ...interface{}) {
	l.Logger.Fatal().Msgf(strings.TrimSpace(format), v...)
}
