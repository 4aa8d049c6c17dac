// Package applog builds the charmbracelet loggers used across the arcade.
package applog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// DefaultPath is where interactive sessions log, since stderr belongs to
// the terminal UI.
const DefaultPath = "~/.arcade/arcade.log"

// New returns a timestamped logger writing to w.
func New(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// OpenFile appends to the log file at path, creating its directory.
// The returned closer must be closed on exit.
func OpenFile(path, prefix string) (*log.Logger, io.Closer, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("applog: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("applog: cannot create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("applog: open %s: %w", path, err)
	}
	return New(f, prefix), f, nil
}
