// Package logging provides the structured logging handle carried as a
// context field, built on Go's slog package.
//
// The runtime core only stores and propagates the handle; it never
// interprets its contents. Handlers receive the logger either from the
// typed context stack (a generated shape's Logger field) or from
// context.Context via FromContext.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	charm "github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelTrace sits below slog.LevelDebug for per-hop wire detail, such as
// the relay client's request/response lines.
const LevelTrace = slog.Level(-8)

// Config holds logging configuration.
type Config struct {
	Level   string // trace, debug, info, warn, error
	Format  string // json, text, pretty
	Service string // service name for default attrs
	Version string // service version for default attrs
	File    FileConfig
}

// FileConfig holds rolling log file settings. When enabled, records are
// written both to the terminal handler and as JSON to the rolling file.
type FileConfig struct {
	Enabled    bool
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New creates a configured slog.Logger writing to stdout.
func New(cfg Config) *slog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter creates a configured slog.Logger with a custom terminal
// writer. Secret redaction is applied to every handler; see redact.go.
func NewWithWriter(cfg Config, w io.Writer) *slog.Logger {
	level := parseLevel(cfg.Level)

	handler := terminalHandler(cfg, level, w)

	if cfg.File.Enabled && cfg.File.Path != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		}

		fileHandler := slog.NewJSONHandler(fileWriter, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: NewReplaceAttr(),
		})

		handler = NewMultiHandler(handler, fileHandler)
	}

	return slog.New(handler).With(
		slog.String("service_name", cfg.Service),
		slog.String("service_version", cfg.Version),
	)
}

// terminalHandler builds the handler for the terminal writer.
func terminalHandler(cfg Config, level slog.Level, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: NewReplaceAttr(),
	}

	switch strings.ToLower(cfg.Format) {
	case "text":
		return slog.NewTextHandler(w, opts)
	case "pretty":
		return charm.NewWithOptions(w, charm.Options{
			ReportTimestamp: true,
			Level:           charmLevel(level),
		})
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// charmLevel maps an slog level to the pretty handler's level type.
func charmLevel(level slog.Level) charm.Level {
	switch {
	case level <= slog.LevelDebug:
		return charm.DebugLevel
	case level <= slog.LevelInfo:
		return charm.InfoLevel
	case level <= slog.LevelWarn:
		return charm.WarnLevel
	default:
		return charm.ErrorLevel
	}
}
