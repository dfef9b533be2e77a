// Package playlog persists the playback history: a plain text file with one
// absolute media file path per line, most recent last. The last hmax lines
// form the window used to exclude recently played files from random selection.
package playlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Log is a handle to a playlist history file. The file does not need to
// exist; a missing file reads as an empty history.
type Log struct {
	path string
}

// New returns a handle to the history file at path.
func New(path string) *Log {
	return &Log{path: path}
}

// Path returns the location of the history file.
func (l *Log) Path() string {
	return l.path
}

// Load returns all history entries, oldest first. A missing file is an empty
// history, not an error. Blank lines are skipped.
func (l *Log) Load() ([]string, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading playlist log %s: %w", l.path, err)
	}

	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	return entries, nil
}

// Append adds newly played paths to the history and truncates the stored
// sequence to the most recent hmax entries. Creates the parent directory if
// missing. hmax < 0 is treated as 0.
func (l *Log) Append(paths []string, hmax int) error {
	entries, err := l.Load()
	if err != nil {
		return err
	}
	entries = Recent(append(entries, paths...), hmax)

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("creating state dir for %s: %w", l.path, err)
	}

	var sb strings.Builder
	for _, entry := range entries {
		sb.WriteString(entry)
		sb.WriteString("\n")
	}
	if err := os.WriteFile(l.path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("writing playlist log %s: %w", l.path, err)
	}
	return nil
}

// Clear resets the history to empty, keeping the file in place. Creates the
// parent directory if missing.
func (l *Log) Clear() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("creating state dir for %s: %w", l.path, err)
	}
	if err := os.WriteFile(l.path, nil, 0644); err != nil {
		return fmt.Errorf("clearing playlist log %s: %w", l.path, err)
	}
	return nil
}

// Recent returns the last n entries of the history (the enforced exclusion
// window). n < 0 is treated as 0.
func Recent(entries []string, n int) []string {
	if n < 0 {
		n = 0
	}
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}
