// Package logging builds modecky's slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the log file written inside the log directory.
const FileName = "modecky.log"

// Options configures New
type Options struct {
	Level  string // debug|info|warn|error
	Format string // text|json
	Dir    string // rotating file sink; stderr when empty
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger writing to a rotating file under opts.Dir, falling back
// to stderr when the directory cannot be created. The returned closer releases
// the file.
func New(opts Options) (*slog.Logger, io.Closer) {
	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if dir := strings.TrimSpace(opts.Dir); dir != "" {
		if err := os.MkdirAll(dir, 0755); err == nil {
			lj := &lumberjack.Logger{
				Filename:   filepath.Join(dir, FileName),
				MaxSize:    5,
				MaxBackups: 3,
				MaxAge:     28,
			}
			w, closer = lj, lj
		}
	}
	return NewWithWriter(w, opts), closer
}

// NewWithWriter returns a logger writing to w
func NewWithWriter(w io.Writer, opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	var h slog.Handler
	if strings.ToLower(opts.Format) == "json" {
		h = slog.NewJSONHandler(w, handlerOpts)
	} else {
		h = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(h)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
