package play

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gigurra/swplay/cmd/common/playlog"
)

func TestToConfigClassifiesSources(t *testing.T) {
	dir := t.TempDir()
	files := createMediaFiles(t, dir, "song.mp3")
	subDir := filepath.Join(dir, "more")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	bogus := filepath.Join(dir, "no-such-thing")

	params := &Params{
		Files:     []string{files[0], subDir, bogus},
		MaxTitles: 3,
		Timelimit: 0.5,
		Hmax:      10,
		Player:    "mplayer -fs",
	}
	cfg := params.toConfig()

	if !reflect.DeepEqual(cfg.Files, files) {
		t.Errorf("Config.Files = %v, want %v", cfg.Files, files)
	}
	if !reflect.DeepEqual(cfg.Dirs, []string{subDir}) {
		t.Errorf("Config.Dirs = %v, want [%s]", cfg.Dirs, subDir)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Config.Timeout = %v, want 30s", cfg.Timeout)
	}
	if !reflect.DeepEqual(cfg.Player, []string{"mplayer", "-fs"}) {
		t.Errorf("Config.Player = %v, want [mplayer -fs]", cfg.Player)
	}
	if !reflect.DeepEqual(cfg.Formats, defaultFormats) {
		t.Errorf("Config.Formats = %v, want defaults %v", cfg.Formats, defaultFormats)
	}
}

func TestRunWithConfigEmptySelectionAborts(t *testing.T) {
	cfg := Config{
		Dirs:    []string{t.TempDir()},
		Count:   1,
		Formats: defaultFormats,
		Timeout: time.Hour,
		HistMax: 100,
		Player:  []string{"mplayer"},
		LogPath: filepath.Join(t.TempDir(), "playlist.log"),
	}

	err := runWithConfig(context.Background(), cfg, io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "no media for playback") {
		t.Errorf("runWithConfig = %v, want no-media error (and no shutdown)", err)
	}
}

func TestRunWithConfigDeleteClearsHistory(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "playlist.log")
	log := playlog.New(logPath)
	if err := log.Append([]string{"/music/old.mp3"}, 100); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	cfg := Config{
		Dirs:    []string{t.TempDir()},
		Count:   1,
		Formats: defaultFormats,
		Timeout: time.Hour,
		HistMax: 100,
		Player:  []string{"mplayer"},
		LogPath: logPath,
		Delete:  true,
	}

	// Aborts on the empty selection, but only after the history wipe
	if err := runWithConfig(context.Background(), cfg, io.Discard, io.Discard); err == nil {
		t.Fatal("runWithConfig succeeded, want no-media error")
	}

	entries, err := log.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("History after --delete = %v, want empty", entries)
	}
}
