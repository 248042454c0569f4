package logger

import (
	"io"
	"log/slog"
	"os"
)

const BritishTimeFormat = "02.01.2006 15:04:05"

// Config represents logger configuration from environment/config
// LogLevel is a string like "debug", "info", "error";
// LogHumanFriendly toggles between text (true) and JSON (false).
// Output defaults to stdout.
type Config struct {
	LogLevel         string
	LogHumanFriendly bool
	Service          string
	Output           io.Writer
}

// ParseLevel converts a string to slog.Level, defaulting to Info on error.
func ParseLevel(level string) slog.Level {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(level))
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// NewFromConfig creates a slog.Logger based on Config.
func NewFromConfig(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.LogLevel),
		AddSource: false,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(BritishTimeFormat))
			}
			return a
		},
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	var handler slog.Handler
	if cfg.LogHumanFriendly {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	log := slog.New(handler)
	if cfg.Service != "" {
		log = log.With(slog.String("service", cfg.Service))
	}
	return log
}
