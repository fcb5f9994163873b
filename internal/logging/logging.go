// Package logging builds the process logger: human-readable text on stderr,
// and optionally JSON lines in a rotating log file.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/joeycumines/uat-helper/internal/config"
)

// Config is the resolved logging configuration.
type Config struct {
	Level     slog.Level
	File      string
	MaxSizeMB int
	MaxFiles  int
}

// ParseLevel parses debug, info, warn or error. An empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", s)
	}
}

// Resolve merges flag values with the config file. A non-empty flag wins,
// then the option (or its environment variable), then the schema default.
// cfg may be nil.
func Resolve(flagLevel, flagFile string, cfg *config.Config) (Config, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	schema := config.DefaultSchema()

	levelStr := flagLevel
	if levelStr == "" {
		levelStr = schema.Resolve(cfg, config.KeyLogLevel)
	}
	level, err := ParseLevel(levelStr)
	if err != nil {
		return Config{}, err
	}

	file := flagFile
	if file == "" {
		file = schema.Resolve(cfg, config.KeyLogFile)
	}

	return Config{
		Level:     level,
		File:      file,
		MaxSizeMB: schema.ResolveInt(cfg, config.KeyLogMaxSizeMB),
		MaxFiles:  schema.ResolveInt(cfg, config.KeyLogMaxFiles),
	}, nil
}

// New returns a logger writing text to stderr and, when c.File is set, JSON
// to that file. The returned closer releases the file and is never nil.
func New(c Config, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: c.Level}
	handlers := []slog.Handler{slog.NewTextHandler(stderr, opts)}

	var closer io.Closer = nopCloser{}
	if c.File != "" {
		f, err := OpenRotatingFile(c.File, c.MaxSizeMB, c.MaxFiles)
		if err != nil {
			return nil, nil, err
		}
		closer = f
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0]), closer, nil
	}
	return slog.New(fanout(handlers)), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// fanout sends every record to each handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
