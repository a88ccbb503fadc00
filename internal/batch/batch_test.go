package batch

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"songbatch/internal/resolve"
	"songbatch/internal/services"
)

func TestRoundTripPreservesNullSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.json")
	entries := []Entry{
		{
			Title:        "Blue",
			Artist:       "X",
			OriginalLine: "- Blue — X",
			Candidates: []resolve.Candidate{
				{ID: "s1", Title: "Blue", Artist: "X", Popularity: 10, MatchedQuery: "Blue"},
			},
			MatchedQuery: "Blue",
		},
	}
	if err := Save(path, entries); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), `"selectedId": null`) {
		t.Fatalf("undecided entries must serialize selectedId as null:\n%s", raw)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Selected() != "" {
		t.Fatalf("loaded = %+v", loaded)
	}
	if loaded[0].Candidates[0].ID != "s1" {
		t.Fatalf("candidates lost: %+v", loaded[0])
	}
}

func TestLoadHandEditedSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.json")
	doc := `[
  {"title": "Blue", "artist": "X", "original_line": "- Blue — X",
   "candidates": [], "selectedId": "s2", "matchedQuery": "Blue"}
]`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	entries, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if entries[0].Selected() != "s2" {
		t.Fatalf("Selected = %q", entries[0].Selected())
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); !errors.Is(err, services.ErrMalformedArtifact) {
		t.Fatalf("expected ErrMalformedArtifact, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); !errors.Is(err, services.ErrMalformedArtifact) {
		t.Fatalf("expected ErrMalformedArtifact, got %v", err)
	}
}

func TestEntryKeyFallback(t *testing.T) {
	e := Entry{Title: "Blue", Artist: "X"}
	if e.Key() != "- Blue — X" {
		t.Fatalf("Key = %q", e.Key())
	}
	e.OriginalLine = "- Blue — X (note)"
	if e.Key() != "- Blue — X (note)" {
		t.Fatalf("Key = %q", e.Key())
	}
}
