// Package logger provides the leveled, structured logger used by the CLI and
// injected into the Copilot search SDK. It is a thin layer over log/slog.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger is the logging surface shared by every package in the module.
// Each level has a structured variant taking key/value pairs and a
// printf-style variant.
type Logger interface {
	Debug(msg string, args ...any)
	Debugf(format string, args ...any)

	Info(msg string, args ...any)
	Infof(format string, args ...any)

	Warn(msg string, args ...any)
	Warnf(format string, args ...any)

	Error(msg string, args ...any)
	Errorf(format string, args ...any)
}

// NoopLogger discards all log messages.
type NoopLogger struct{}

func (NoopLogger) Debug(msg string, args ...any)     {}
func (NoopLogger) Debugf(format string, args ...any) {}
func (NoopLogger) Info(msg string, args ...any)      {}
func (NoopLogger) Infof(format string, args ...any)  {}
func (NoopLogger) Warn(msg string, args ...any)      {}
func (NoopLogger) Warnf(format string, args ...any)  {}
func (NoopLogger) Error(msg string, args ...any)     {}
func (NoopLogger) Errorf(format string, args ...any) {}

// Options controls how New builds a logger.
type Options struct {
	// Writer receives the log output. Defaults to os.Stderr.
	Writer io.Writer
	// Debug lowers the level from Info to Debug.
	Debug bool
	// JSON selects the JSON handler instead of the text handler.
	JSON bool
}

// SlogLogger implements Logger on top of a *slog.Logger.
type SlogLogger struct {
	logger *slog.Logger
}

// New creates a SlogLogger from opts.
func New(opts Options) *SlogLogger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return &SlogLogger{logger: slog.New(handler)}
}

// With returns a logger that adds args to every record.
func (l *SlogLogger) With(args ...any) *SlogLogger {
	return &SlogLogger{logger: l.logger.With(args...)}
}

func (l *SlogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *SlogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *SlogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func (l *SlogLogger) Debugf(format string, args ...any) { l.logger.Debug(sprintf(format, args...)) }
func (l *SlogLogger) Infof(format string, args ...any)  { l.logger.Info(sprintf(format, args...)) }
func (l *SlogLogger) Warnf(format string, args ...any)  { l.logger.Warn(sprintf(format, args...)) }
func (l *SlogLogger) Errorf(format string, args ...any) { l.logger.Error(sprintf(format, args...)) }

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
