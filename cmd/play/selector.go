package play

import (
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/gigurra/swplay/cmd/common/playlog"
	"github.com/samber/lo"
)

// SelectionRequest describes one round of playlist selection.
type SelectionRequest struct {
	Files   []string // explicit files, played first, order preserved
	Dirs    []string // directories to sample random picks from
	Count   int      // total number of titles wanted
	Formats []string // accepted file extensions, with or without leading dot
	History []string // previously played paths, oldest first
	HistMax int      // how many recent history entries to exclude
}

// Select resolves a playlist: explicit files verbatim first (capped at
// Count), then random picks from the directories, skipping recently played
// files. Sampling is without replacement; when fewer candidates remain than
// requested the result is simply shorter. When recent history rules out
// every candidate, selection falls back to the full candidate set rather
// than returning nothing.
func Select(req SelectionRequest, rng *rand.Rand) []string {
	playlist := make([]string, 0, req.Count)
	for _, f := range req.Files {
		if len(playlist) >= req.Count {
			break
		}
		playlist = append(playlist, f)
	}

	remaining := req.Count - len(playlist)
	if remaining <= 0 {
		return playlist
	}

	candidates := listCandidates(req.Dirs, req.Formats)
	slog.Debug("found candidate media files", "count", len(candidates))

	// Never pick a file twice, also not one already named explicitly
	chosen := make(map[string]bool, len(playlist))
	for _, f := range playlist {
		chosen[absPath(f)] = true
	}
	candidates = lo.Filter(candidates, func(c string, _ int) bool {
		return !chosen[c]
	})

	recent := make(map[string]bool)
	for _, h := range playlog.Recent(req.History, req.HistMax) {
		recent[h] = true
	}
	fresh := lo.Filter(candidates, func(c string, _ int) bool {
		return !recent[c]
	})
	slog.Debug("candidates not in recent history", "count", len(fresh))

	if len(fresh) == 0 && len(candidates) > 0 {
		slog.Warn("all available media was recently played, choosing from all available media", "dirs", req.Dirs)
		fresh = candidates
	}

	// Shuffle a copy and take the first picks
	shuffled := make([]string, len(fresh))
	copy(shuffled, fresh)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if remaining > len(shuffled) {
		remaining = len(shuffled)
	}
	return append(playlist, shuffled[:remaining]...)
}

// listCandidates enumerates files directly under dirs (non-recursive) whose
// extension is in formats, as deduplicated absolute paths. Dotfiles are
// skipped. Scans the working directory when no dirs are given. Invalid
// directories are skipped with a warning.
func listCandidates(dirs []string, formats []string) []string {
	if len(dirs) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil
		}
		dirs = []string{cwd}
	}

	exts := make(map[string]bool, len(formats))
	for _, f := range formats {
		exts[strings.ToLower(strings.TrimPrefix(f, "."))] = true
	}

	var candidates []string
	seen := make(map[string]bool)
	for _, dir := range dirs {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			slog.Warn("skipping directory", "dir", dir, "error", err)
			continue
		}
		dirEntries, err := os.ReadDir(absDir)
		if err != nil {
			slog.Warn("skipping unreadable directory", "dir", dir, "error", err)
			continue
		}
		for _, entry := range dirEntries {
			if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(entry.Name()), "."))
			if !exts[ext] {
				continue
			}
			path := filepath.Join(absDir, entry.Name())
			if seen[path] {
				continue
			}
			seen[path] = true
			candidates = append(candidates, path)
		}
	}
	return candidates
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
