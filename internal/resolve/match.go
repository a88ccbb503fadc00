package resolve

import (
	"sort"
	"strings"

	"songbatch/internal/services/rhythm"
	"songbatch/internal/textutil"
)

// Candidate is a remote result that passed the title filter, annotated with
// the query that produced it. Candidate order within one requested song is
// the system's ranking contract.
type Candidate struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Artist       string  `json:"artist"`
	Popularity   float64 `json:"popularityScore"`
	MatchedQuery string  `json:"matchedQuery"`
}

// TitleMatches reports whether a result title plausibly denotes the requested
// song: the parenthetical-stripped requested title and the result title are
// normalized, and one must contain the other. Containment works in either
// direction, so "Song" matches "Song (Remastered)" and vice versa. No
// edit-distance scoring.
func TitleMatches(requestedTitle, resultTitle string) bool {
	requested := textutil.Normalize(textutil.CleanTitle(requestedTitle))
	result := textutil.Normalize(resultTitle)
	if requested == "" || result == "" {
		return false
	}
	return strings.Contains(result, requested) || strings.Contains(requested, result)
}

// indexedSong pairs a search result with the position it held in the page
// that first returned it.
type indexedSong struct {
	song  rhythm.Song
	index int
}

// rankSongs orders matches by descending popularity, breaking ties by page
// position. Ties and absent popularity fall back to the catalog's own
// relevance order, keeping reruns deterministic.
func rankSongs(songs []indexedSong) {
	sort.Slice(songs, func(i, j int) bool {
		if songs[i].song.Popularity != songs[j].song.Popularity {
			return songs[i].song.Popularity > songs[j].song.Popularity
		}
		return songs[i].index < songs[j].index
	})
}
