// Package logging configures the per-invocation logger. In normal mode all
// logging is disabled; --debug enables debug-level output to stderr and an
// append-only log file, mirroring what the CLI prints when asked to explain
// itself.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// DefaultLogFile is where debug output is appended.
const DefaultLogFile = "weather_debug.log"

// Setup returns the invocation logger and a flush/close function to defer.
// With debug off the logger discards everything.
func Setup(debug bool, logFile string) (*slog.Logger, func()) {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}

	if logFile == "" {
		logFile = DefaultLogFile
	}

	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		// Still debuggable on stderr when the file cannot be opened.
		log := slog.New(slog.NewTextHandler(os.Stderr, opts))
		log.Warn("cannot open debug log file", "path", logFile, "err", err)
		return log, func() {}
	}

	log := slog.New(slog.NewTextHandler(io.MultiWriter(os.Stderr, f), opts))
	log.Debug("debug logging enabled", "file", logFile)
	return log, func() { f.Close() }
}

// Timed logs the start of an operation and returns a func that logs its
// duration; call it with defer or at the end of the operation.
func Timed(log *slog.Logger, operation string) func() {
	start := time.Now()
	log.Debug("starting " + operation)
	return func() {
		log.Debug("completed "+operation, "elapsed", time.Since(start))
	}
}
