package resolve

import (
	"context"
	"log/slog"

	"songbatch/internal/services/rhythm"
)

// Searcher is the remote search collaborator. An empty result set may mean
// either no matches or a transport failure upstream; the pipeline does not
// distinguish the two.
type Searcher interface {
	Search(ctx context.Context, query string) ([]rhythm.Song, error)
}

// Resolver runs the candidate resolution pipeline for one requested song.
type Resolver struct {
	searcher Searcher
	logger   *slog.Logger
}

// New builds a Resolver around a search collaborator.
func New(searcher Searcher, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{searcher: searcher, logger: logger}
}

// Resolve tries the fallback queries in order and stops at the first one
// that returns any results. Later, broader queries are never tried once some
// query answers, even when none of those results survive the title filter.
//
// The returned usedQuery is empty when no query produced results; an empty
// candidate list with a non-empty usedQuery means results arrived but none
// matched the title. Neither outcome is an error.
func (r *Resolver) Resolve(ctx context.Context, title, artist string) (candidates []Candidate, usedQuery string) {
	var page []indexedSong
	for _, query := range Queries(title, artist) {
		if ctx.Err() != nil {
			return nil, ""
		}
		results, err := r.searcher.Search(ctx, query)
		if err != nil {
			// Transport errors and empty pages are indistinguishable by
			// contract; fall through to the next query either way.
			r.logger.Debug("search failed", "query", query, "error", err)
			continue
		}
		if len(results) == 0 {
			continue
		}
		usedQuery = query
		seen := make(map[string]struct{}, len(results))
		for idx, song := range results {
			if _, ok := seen[song.ID]; ok {
				continue
			}
			seen[song.ID] = struct{}{}
			page = append(page, indexedSong{song: song, index: idx})
		}
		break
	}
	if len(page) == 0 {
		return nil, usedQuery
	}

	matches := page[:0]
	for _, entry := range page {
		if TitleMatches(title, entry.song.Title) {
			matches = append(matches, entry)
		}
	}
	if len(matches) == 0 {
		r.logger.Debug("no title match", "title", title, "query", usedQuery, "results", len(page))
		return nil, usedQuery
	}

	rankSongs(matches)

	candidates = make([]Candidate, 0, len(matches))
	for _, entry := range matches {
		candidates = append(candidates, Candidate{
			ID:           entry.song.ID,
			Title:        entry.song.Title,
			Artist:       entry.song.Artist,
			Popularity:   entry.song.Popularity,
			MatchedQuery: usedQuery,
		})
	}
	return candidates, usedQuery
}
