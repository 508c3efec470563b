// Package debug provides the CLI's debug logging using log/slog.
package debug

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	logger  = newLogger(io.Discard, false)
	enabled bool
	mu      sync.RWMutex
)

// Init enables or disables debug logging to os.Stderr.
func Init(enable bool) { InitWriter(enable, os.Stderr) }

// InitWriter enables or disables debug logging to the given writer.
// When disabled, every record is discarded.
func InitWriter(enable bool, out io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
	logger = newLogger(out, enable)
}

func newLogger(out io.Writer, enable bool) *slog.Logger {
	level := slog.LevelDebug
	if !enable {
		// Above any level actually used.
		level = slog.LevelError + 1
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

func Debug(msg string, args ...any) { Logger().Debug(msg, args...) }
func Info(msg string, args ...any)  { Logger().Info(msg, args...) }
func Warn(msg string, args ...any)  { Logger().Warn(msg, args...) }
func Error(msg string, args ...any) { Logger().Error(msg, args...) }

// Logger returns the current logger.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
