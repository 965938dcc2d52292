// Package ui provides the console handle shared by the pipeline and its
// plugins: a writer for human-facing lines and a leveled slog logger.
package ui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

const (
	// LevelVerbose shows debug output, including plugin verbose logs.
	LevelVerbose = slog.LevelDebug
	// LevelDefault shows informational output.
	LevelDefault = slog.LevelInfo
	// LevelQuiet shows warnings and errors only.
	LevelQuiet = slog.LevelWarn
)

// UI is the pipeline's console handle. The log level is mutable so an
// external tool can lower it and a caller can restore it afterwards.
type UI struct {
	out    io.Writer
	level  *slog.LevelVar
	logger *slog.Logger
}

// New creates a UI writing to out. verbose selects LevelVerbose.
func New(out io.Writer, verbose bool) *UI {
	if out == nil {
		out = os.Stderr
	}

	level := new(slog.LevelVar)
	level.Set(LevelDefault)
	if verbose {
		level.Set(LevelVerbose)
	}

	return &UI{
		out:   out,
		level: level,
		logger: slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
			Level: level,
		})),
	}
}

// Discard returns a UI that drops everything. Useful in tests.
func Discard() *UI {
	return New(io.Discard, false)
}

// Writer returns the underlying output writer.
func (u *UI) Writer() io.Writer {
	return u.out
}

// Logger returns the structured logger bound to the UI level.
func (u *UI) Logger() *slog.Logger {
	return u.logger
}

// LogLevel returns the current level.
func (u *UI) LogLevel() slog.Level {
	return u.level.Level()
}

// SetLogLevel changes the current level.
func (u *UI) SetLogLevel(level slog.Level) {
	u.level.Set(level)
}

// Verbose reports whether debug output is enabled.
func (u *UI) Verbose() bool {
	return u.level.Level() <= LevelVerbose
}

// WriteLine prints a human-facing line unless the UI is quiet.
func (u *UI) WriteLine(format string, args ...any) {
	if u.level.Level() > LevelDefault {
		return
	}
	fmt.Fprintf(u.out, format+"\n", args...)
}
