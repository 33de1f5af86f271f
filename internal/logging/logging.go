// Package logging builds the zerolog logger shared by every component.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level is given.
const DefaultLevel = "warn"

// New returns a logger writing to w at the given level. With console set
// the output is human readable rather than JSON.
func New(level string, w io.Writer, console bool) (zerolog.Logger, error) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if w == nil {
		w = io.Discard
	}
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// Open returns a logger for a file path, appending to it. An empty path
// yields a logger that discards everything. The returned close function is
// never nil.
func Open(level, path string) (zerolog.Logger, func() error, error) {
	noop := func() error { return nil }
	if path == "" {
		log, err := New(level, io.Discard, false)
		return log, noop, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), noop, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), noop, fmt.Errorf("opening log file: %w", err)
	}
	log, err := New(level, f, false)
	if err != nil {
		f.Close()
		return zerolog.Nop(), noop, err
	}
	return log, f.Close, nil
}
