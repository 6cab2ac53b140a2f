// Package logging provides logging utilities for openshot.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Structured logs go to two channels, each with its own level:
//
//	logging.Setup(logging.Channels{
//	    ConsoleLevel: slog.LevelDebug,
//	    FileLevel:    slog.LevelInfo,
//	    Console:      os.Stderr,
//	    File:         logFile,
//	})
//	logging.Debug("constructing application", "argv", argv)
//
// The console channel always exists. The file channel is optional and is
// skipped when no writer is given.
//
// # User Output
//
// User-facing messages go through a Printer, which bundles the two
// destinations so callers (and tests) can redirect them together:
//
//	p := logging.NewPrinter(stdout, stderr)
//	p.Plain("Supported Languages:")
//	p.Info("Loaded modules from: %s", origin)
//	p.Success("Added %s to module path", dir)
//	p.Warning("%s does not exist", dir)
//	p.Error("Unsupported language '%s'!", code)
//
// Output destinations:
//   - Plain, Info, Success: Out
//   - Warning, Error: Err
//
// NewPrinter substitutes os.Stdout and os.Stderr for nil writers.
package logging
