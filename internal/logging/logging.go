package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
)

var (
	// Logger is the global structured logger
	Logger *slog.Logger

	// Verbose is true when either channel logs at debug level
	Verbose bool
)

func init() {
	Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// Channels describes the console and file log channels.
type Channels struct {
	ConsoleLevel slog.Level
	FileLevel    slog.Level

	// Console defaults to os.Stderr when nil.
	Console io.Writer
	// File is optional; no file channel is created when nil.
	File io.Writer
}

// Setup configures the global logger from the channel description.
func Setup(ch Channels) {
	Verbose = ch.ConsoleLevel <= slog.LevelDebug || (ch.File != nil && ch.FileLevel <= slog.LevelDebug)

	console := ch.Console
	if console == nil {
		console = os.Stderr
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: ch.ConsoleLevel}),
	}
	if ch.File != nil {
		handlers = append(handlers, slog.NewTextHandler(ch.File, &slog.HandlerOptions{Level: ch.FileLevel}))
	}

	if len(handlers) == 1 {
		Logger = slog.New(handlers[0])
		return
	}
	Logger = slog.New(teeHandler(handlers))
}

// teeHandler sends each record to every handler that accepts its level.
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}
