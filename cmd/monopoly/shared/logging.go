package shared

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a levelled console logger on stderr. debug forces
// the debug level regardless of level.
func SetupLogger(level string, debug bool) (*log.Logger, error) {
	return NewLogger(os.Stderr, level, debug)
}

// NewLogger is SetupLogger with an explicit destination.
func NewLogger(w io.Writer, level string, debug bool) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}
	if debug {
		lvl = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}), nil
}
