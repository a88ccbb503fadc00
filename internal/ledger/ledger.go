// Package ledger persists per-song terminal outcomes so repeated runs make
// forward progress without re-attempting anything. The document is a single
// human-readable JSON file; every mutation is saved whole, so a crash loses
// at most the in-flight song's outcome.
package ledger

import "songbatch/internal/songlist"

// Terminal skip/failure reasons recorded in the document.
const (
	ReasonNoResults           = "No results found"
	ReasonNoTitleMatch        = "No title match"
	ReasonAllCandidatesFailed = "All candidates failed"
	ReasonNoSelection         = "No selectedId in candidates"
)

// AddedRecord describes a successful import.
type AddedRecord struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	SongID string `json:"song_id"`
}

// OutcomeRecord describes a failed or skipped song with a human-readable
// reason.
type OutcomeRecord struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Reason string `json:"reason"`
}

// Ledger is the progress document. Processed holds the original source lines
// of every terminally handled song and is the resume boundary; each processed
// key has exactly one record across Added, Failed, and Skipped.
type Ledger struct {
	Processed []string        `json:"processed"`
	Added     []AddedRecord   `json:"added"`
	Failed    []OutcomeRecord `json:"failed"`
	Skipped   []OutcomeRecord `json:"skipped"`

	processedSet map[string]struct{}
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		Processed:    []string{},
		Added:        []AddedRecord{},
		Failed:       []OutcomeRecord{},
		Skipped:      []OutcomeRecord{},
		processedSet: make(map[string]struct{}),
	}
}

func (l *Ledger) index() {
	l.processedSet = make(map[string]struct{}, len(l.Processed))
	for _, key := range l.Processed {
		l.processedSet[key] = struct{}{}
	}
}

// IsProcessed reports whether the song identified by the original source line
// has already been terminally handled.
func (l *Ledger) IsProcessed(key string) bool {
	_, ok := l.processedSet[key]
	return ok
}

func (l *Ledger) markProcessed(key string) {
	if l.IsProcessed(key) {
		return
	}
	l.Processed = append(l.Processed, key)
	l.processedSet[key] = struct{}{}
}

// MarkAdded records a successful import and marks the song processed. Any
// stale skipped entry for the same title from an earlier run is removed so
// the song carries exactly one terminal record.
func (l *Ledger) MarkAdded(item songlist.Item, songID string) {
	l.Added = append(l.Added, AddedRecord{Title: item.Title, Artist: item.Artist, SongID: songID})
	l.markProcessed(item.Key)
	l.dropSkipped(item.Title)
}

// MarkFailed records a terminal failure and marks the song processed.
func (l *Ledger) MarkFailed(item songlist.Item, reason string) {
	l.Failed = append(l.Failed, OutcomeRecord{Title: item.Title, Artist: item.Artist, Reason: reason})
	l.markProcessed(item.Key)
}

// MarkSkipped records that no candidate was ever attempted and marks the song
// processed. A previous skip entry for the same title is replaced.
func (l *Ledger) MarkSkipped(item songlist.Item, reason string) {
	l.dropSkipped(item.Title)
	l.Skipped = append(l.Skipped, OutcomeRecord{Title: item.Title, Artist: item.Artist, Reason: reason})
	l.markProcessed(item.Key)
}

func (l *Ledger) dropSkipped(title string) {
	kept := l.Skipped[:0]
	for _, record := range l.Skipped {
		if record.Title != title {
			kept = append(kept, record)
		}
	}
	l.Skipped = kept
}

// Remaining filters the curated list down to songs not yet processed,
// preserving source order.
func (l *Ledger) Remaining(items []songlist.Item) []songlist.Item {
	remaining := make([]songlist.Item, 0, len(items))
	for _, item := range items {
		if !l.IsProcessed(item.Key) {
			remaining = append(remaining, item)
		}
	}
	return remaining
}

// Counts aggregates the ledger for status output.
type Counts struct {
	Processed int
	Added     int
	Failed    int
	Skipped   int
}

// Counts returns aggregate totals.
func (l *Ledger) Counts() Counts {
	return Counts{
		Processed: len(l.Processed),
		Added:     len(l.Added),
		Failed:    len(l.Failed),
		Skipped:   len(l.Skipped),
	}
}
