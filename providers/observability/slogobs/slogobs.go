package slogobs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"schedbot/providers/observability"
)

// Observer implements observability.Provider on top of the standard library
// slog. Spans are rendered as paired start/end log lines and span events as
// debug lines, which is enough visibility for a single-process agent without
// pulling in a tracing backend.
type Observer struct {
	logger *slog.Logger
}

// Option configures an [Observer].
type Option func(*config)

type config struct {
	logger *slog.Logger
	level  slog.Level
	output io.Writer
}

// WithLogger uses an existing slog.Logger instead of constructing one.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithLevel sets the minimum log level. Defaults to slog.LevelInfo.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithOutput sets the log destination. Defaults to os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// New creates a slog-based observer. Without options it logs text to stderr
// at INFO level.
//
// Example:
//
//	obs := slogobs.New(slogobs.WithLevel(slog.LevelDebug))
func New(opts ...Option) *Observer {
	cfg := &config{
		level:  slog.LevelInfo,
		output: os.Stderr,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(cfg.output, &slog.HandlerOptions{Level: cfg.level}))
	}

	return &Observer{logger: logger}
}

// Ensure Observer implements observability.Provider at compile time.
var _ observability.Provider = (*Observer)(nil)

// StartSpan starts a span and attaches it to the returned context.
func (o *Observer) StartSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, observability.Span) {
	span := &logSpan{
		observer: o,
		name:     name,
		start:    time.Now(),
		attrs:    attrs,
	}
	o.logger.Debug("span start", span.logAttrs()...)
	return observability.ContextWithSpan(ctx, span), span
}

func (o *Observer) Debug(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.DebugContext(ctx, msg, toSlogArgs(attrs)...)
}

func (o *Observer) Info(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.InfoContext(ctx, msg, toSlogArgs(attrs)...)
}

func (o *Observer) Warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.WarnContext(ctx, msg, toSlogArgs(attrs)...)
}

func (o *Observer) Error(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.ErrorContext(ctx, msg, toSlogArgs(attrs)...)
}

// logSpan is the slog-backed Span implementation.
type logSpan struct {
	observer *Observer
	name     string
	start    time.Time
	attrs    []observability.Attribute
	status   observability.StatusCode
	desc     string
	err      error
}

func (s *logSpan) End() {
	args := s.logAttrs()
	args = append(args, slog.Duration("duration", time.Since(s.start)))
	if s.err != nil {
		args = append(args, slog.String("error", s.err.Error()))
	}
	if s.status == observability.StatusError {
		s.observer.logger.Warn("span end", args...)
		return
	}
	s.observer.logger.Debug("span end", args...)
}

func (s *logSpan) SetAttributes(attrs ...observability.Attribute) {
	s.attrs = append(s.attrs, attrs...)
}

func (s *logSpan) SetStatus(code observability.StatusCode, description string) {
	s.status = code
	s.desc = description
}

func (s *logSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.err = err
	s.status = observability.StatusError
}

func (s *logSpan) AddEvent(name string, attrs ...observability.Attribute) {
	args := []any{slog.String("span", s.name)}
	args = append(args, toSlogArgs(attrs)...)
	s.observer.logger.Debug(name, args...)
}

func (s *logSpan) logAttrs() []any {
	args := []any{slog.String("span", s.name)}
	args = append(args, toSlogArgs(s.attrs)...)
	return args
}

func toSlogArgs(attrs []observability.Attribute) []any {
	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, slog.Any(a.Key, a.Value))
	}
	return args
}
