// Package logging sets up the diagnostic stream.
//
// The terminal belongs to bubbletea while the UI runs, so logs go to a file
// opened through tea.LogToFile. That also routes the standard library logger
// (and bubbletea's own log calls) into the same file.
package logging

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Open returns a text slog.Logger writing to path, plus a close func.
// An empty path discards everything.
func Open(path string, debug bool) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	if path == "" {
		return Discard(), func() error { return nil }, nil
	}
	f, err := tea.LogToFile(path, "laptopstore")
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return New(f, level), f.Close, nil
}

func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func Discard() *slog.Logger {
	return New(io.Discard, slog.LevelError)
}
