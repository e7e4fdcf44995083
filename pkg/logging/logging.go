// Package logging provides structured logging for supplysense, backed by
// zerolog.
package logging

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the logging interface used throughout supplysense
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, fields map[string]interface{})

	// With returns a child logger that always carries the given fields
	With(fields map[string]interface{}) Logger
}

// Option configures the logger created by New
type Option func(*options)

type options struct {
	level  zerolog.Level
	writer io.Writer
}

// WithLevel sets the minimum level that will be logged
func WithLevel(level zerolog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithWriter sets the output writer (stderr by default)
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// New creates a Logger with the given options
func New(opts ...Option) Logger {
	o := &options{
		level:  zerolog.InfoLevel,
		writer: os.Stderr,
	}
	for _, opt := range opts {
		opt(o)
	}

	zl := zerolog.New(o.writer).Level(o.level).With().Timestamp().Logger()
	return &zerologLogger{logger: zl}
}

// Noop returns a logger that discards everything. Useful in tests.
func Noop() Logger {
	return &zerologLogger{logger: zerolog.Nop()}
}

type zerologLogger struct {
	logger zerolog.Logger
}

func (l *zerologLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {
	l.logger.Debug().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Info(ctx context.Context, msg string, fields map[string]interface{}) {
	l.logger.Info().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Warn(ctx context.Context, msg string, fields map[string]interface{}) {
	l.logger.Warn().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {
	l.logger.Error().Fields(fields).Msg(msg)
}

func (l *zerologLogger) With(fields map[string]interface{}) Logger {
	return &zerologLogger{logger: l.logger.With().Fields(fields).Logger()}
}
