// Package logging sets up the application log file. The terminal belongs to
// the TUI, so log lines go to a file under the XDG state directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

const logFile = "moodtune/moodtune.log"

// DefaultPath returns the log file path under $XDG_STATE_HOME.
func DefaultPath() (string, error) {
	return xdg.StateFile(logFile)
}

// Setup opens path for appending and returns a logger writing to it.
// An empty path selects DefaultPath. Debug enables debug-level lines,
// otherwise the level is info. The returned closer closes the file.
func Setup(path string, debug bool) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("resolve log path: %w", err)
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return New(f, level), f, nil
}

// New returns a timestamped logger on w at the given level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
