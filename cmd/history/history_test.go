package history

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gigurra/swplay/cmd/common/playlog"
)

func TestLsEmptyHistory(t *testing.T) {
	log := playlog.New(filepath.Join(t.TempDir(), "playlist.log"))

	var out bytes.Buffer
	if err := runLs(log, false, &out); err != nil {
		t.Fatalf("runLs failed: %v", err)
	}
	if !strings.Contains(out.String(), "No playback history found") {
		t.Errorf("Empty history output = %q, want empty-state message", out.String())
	}
}

func TestLsJSON(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "song.mp3")
	if err := os.WriteFile(existing, []byte("media"), 0644); err != nil {
		t.Fatalf("Failed to create media file: %v", err)
	}
	gone := filepath.Join(dir, "deleted.mp3")

	log := playlog.New(filepath.Join(dir, "playlist.log"))
	if err := log.Append([]string{existing, gone}, 100); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	var out bytes.Buffer
	if err := runLs(log, true, &out); err != nil {
		t.Fatalf("runLs failed: %v", err)
	}

	var records []record
	if err := json.Unmarshal(out.Bytes(), &records); err != nil {
		t.Fatalf("runLs --json produced invalid JSON: %v\n%s", err, out.String())
	}
	if len(records) != 2 {
		t.Fatalf("Got %d records, want 2: %v", len(records), records)
	}
	if records[0].Index != 1 || records[0].Path != existing || !records[0].Exists {
		t.Errorf("First record = %+v, want index 1, path %q, exists", records[0], existing)
	}
	if records[1].Index != 2 || records[1].Path != gone || records[1].Exists {
		t.Errorf("Second record = %+v, want index 2, path %q, missing", records[1], gone)
	}
}

func TestLsTable(t *testing.T) {
	dir := t.TempDir()
	gone := filepath.Join(dir, "deleted.mp3")

	log := playlog.New(filepath.Join(dir, "playlist.log"))
	if err := log.Append([]string{gone}, 100); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	var out bytes.Buffer
	if err := runLs(log, false, &out); err != nil {
		t.Fatalf("runLs failed: %v", err)
	}
	if !strings.Contains(out.String(), "deleted.mp3") {
		t.Errorf("Table output missing history entry:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "missing") {
		t.Errorf("Table output missing 'missing' note for deleted file:\n%s", out.String())
	}
}

func TestClear(t *testing.T) {
	log := playlog.New(filepath.Join(t.TempDir(), "playlist.log"))
	if err := log.Append([]string{"/music/a.mp3", "/music/b.mp3"}, 100); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	var out bytes.Buffer
	if err := runClear(log, &out); err != nil {
		t.Fatalf("runClear failed: %v", err)
	}

	entries, err := log.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("History after clear = %v, want empty", entries)
	}
	if !strings.Contains(out.String(), "Playback history cleared") {
		t.Errorf("Clear output = %q, want confirmation", out.String())
	}
}
