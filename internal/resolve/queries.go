package resolve

import (
	"strings"

	"songbatch/internal/textutil"
)

// Queries derives the ordered fallback search strings for a song, most
// specific first. Duplicates are removed while preserving first occurrence;
// empty strings are dropped. The result never exceeds seven entries.
func Queries(title, artist string) []string {
	titleClean := textutil.CleanTitle(title)
	artistClean := textutil.CleanArtist(artist)
	titleSimple := textutil.Simplify(titleClean)
	artistSimple := textutil.Simplify(artistClean)

	firstWord := ""
	if fields := strings.Fields(titleSimple); len(fields) > 0 {
		firstWord = fields[0]
	}

	queries := []string{
		// Titles are usually unique enough to search alone.
		titleClean,
		strings.TrimSpace(titleClean + " " + artistClean),
		titleSimple,
		strings.TrimSpace(titleSimple + " " + artistSimple),
		// Artist alone may surface the song under a different title spelling.
		artistClean,
	}

	// Punctuation-heavy titles can simplify to a string not yet tried.
	if titleSimple != titleClean {
		queries = append(queries, titleSimple)
	}

	// Last-resort loose match; short words return unrelated noise.
	if len(firstWord) > 3 {
		queries = append(queries, firstWord)
	}

	seen := make(map[string]struct{}, len(queries))
	unique := make([]string, 0, len(queries))
	for _, q := range queries {
		if q == "" {
			continue
		}
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		unique = append(unique, q)
	}
	return unique
}
