package common

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// SetupLogging configures slog to write to both stderr and ~/.swplay/swplay.log.
// Debug messages are only emitted when verbose is set. Falls back to
// stderr-only when the log file cannot be opened.
func SetupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr

	logPath := DiagLogPath()
	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err == nil {
			logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err == nil {
				out = io.MultiWriter(os.Stderr, logFile)
			}
		}
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
