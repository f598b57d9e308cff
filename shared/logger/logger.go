// Package logger builds the zerolog logger shared by the services.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls output format and verbosity.
type Config struct {
	Level      string
	Production bool
	Service    string
}

// New returns a logger writing to stdout. Production emits JSON lines,
// anything else uses the human readable console writer.
func New(cfg Config) *zerolog.Logger {
	var out io.Writer = os.Stdout
	if !cfg.Production {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return NewWithWriter(cfg, out)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(cfg Config, out io.Writer) *zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}

	logger := ctx.Logger()
	return &logger
}
