package common

import (
	"os"
	"path/filepath"
)

// StateDir returns the per-user swplay state directory (~/.swplay).
// Returns "" when the home directory cannot be resolved.
func StateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".swplay")
}

// PlaylistLogPath returns the path to the playlist history file.
func PlaylistLogPath() string {
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "playlist.log")
}

// DiagLogPath returns the path to the diagnostic log file.
func DiagLogPath() string {
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "swplay.log")
}
