// Package cli implements the localboard command line.
//
// Running localboard with no arguments hosts a new board. Passing a share
// link (localboard://host:port) joins an existing one. The host, join,
// discover and export subcommands expose the same actions explicitly.
//
// All commands accept --verbose (-v) for debug logging. The logger and the
// loaded configuration travel through the command's context.
package cli

import (
	"context"
	"io"

	"LocalBoard/internal/config"

	"github.com/charmbracelet/log"
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// levelFor maps a config log level to a logger level. verbose wins.
func levelFor(name string, verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

type ctxKey int

const (
	loggerKey ctxKey = iota
	configKey
)

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the command's logger, or log.Default() when
// none was attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

func withConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

func configFromContext(ctx context.Context) config.Config {
	if cfg, ok := ctx.Value(configKey).(config.Config); ok {
		return cfg
	}
	return config.Default()
}
