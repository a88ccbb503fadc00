// Package batch reads and writes the candidate batch document that bridges
// the two-phase workflow: the search phase records ranked candidates per
// song, a human sets selectedId on the entries they approve, and the commit
// phase imports exactly those selections. The file is plain indented JSON so
// it can be edited by hand between phases.
package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"songbatch/internal/resolve"
	"songbatch/internal/services"
)

// Entry captures one song's resolution outcome awaiting human review.
// SelectedID is nil until a reviewer decides; nil means "no decision yet",
// which the commit phase treats differently from an explicit skip.
type Entry struct {
	Title        string              `json:"title"`
	Artist       string              `json:"artist"`
	OriginalLine string              `json:"original_line"`
	Candidates   []resolve.Candidate `json:"candidates"`
	SelectedID   *string             `json:"selectedId"`
	MatchedQuery string              `json:"matchedQuery"`
}

// Selected returns the reviewer's chosen song ID, or empty when no decision
// has been made.
func (e Entry) Selected() string {
	if e.SelectedID == nil {
		return ""
	}
	return strings.TrimSpace(*e.SelectedID)
}

// Key returns the ledger identity for the entry, synthesizing a canonical
// line when the document omits one.
func (e Entry) Key() string {
	if line := strings.TrimSpace(e.OriginalLine); line != "" {
		return line
	}
	return fmt.Sprintf("- %s — %s", e.Title, e.Artist)
}

// Load reads a candidate batch document. Any read or decode failure is a
// malformed-artifact error: fatal to the invocation, ledger untouched.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrMalformedArtifact, "batch", fmt.Sprintf("read %s", path), err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, services.Wrap(services.ErrMalformedArtifact, "batch", fmt.Sprintf("parse %s", path), err)
	}
	return entries, nil
}

// Save writes the batch document as indented JSON.
func Save(path string, entries []Entry) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create batch directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode batch: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write batch: %w", err)
	}
	return nil
}
