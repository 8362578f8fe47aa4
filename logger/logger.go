// Package logger provides a zerolog wrapper with defaults suited to a batch CLI
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the logger
type Options struct {
	Level     string
	Format    string
	Service   string
	Component string
	Writer    io.Writer
}

// Logger is the project-wide logging type
type Logger = zerolog.Logger

// New builds a logger from opt. Output defaults to stderr since stdout carries batch results
func New(opt Options) Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var w io.Writer = os.Stderr
	if opt.Writer != nil {
		w = opt.Writer
	}
	if strings.ToLower(opt.Format) == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
	if opt.Service != "" {
		ctx = ctx.Str("service", opt.Service)
	}
	if opt.Component != "" {
		ctx = ctx.Str("component", opt.Component)
	}
	return ctx.Logger()
}

// Nop returns a disabled logger
func Nop() Logger { return zerolog.Nop() }

// Named returns a child logger with a component field
func Named(l Logger, component string) Logger {
	if component == "" {
		return l
	}
	return l.With().Str("component", component).Logger()
}

// parseLevel supports string-only levels, unknown values fall back to warn
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}
