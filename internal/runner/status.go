package runner

import (
	"songbatch/internal/ledger"
	"songbatch/internal/resolve"
	"songbatch/internal/songlist"
)

// Status summarizes batch progress against the curated list.
type Status struct {
	Total     int
	Added     int
	Failed    int
	Skipped   int
	Remaining int
	NextUp    []songlist.Item
}

// BuildStatus computes progress totals and the next unprocessed items, up to
// nextN, in source order.
func BuildStatus(items []songlist.Item, led *ledger.Ledger, nextN int) Status {
	remaining := led.Remaining(items)
	counts := led.Counts()

	next := remaining
	if nextN > 0 && len(next) > nextN {
		next = next[:nextN]
	}

	return Status{
		Total:     len(items),
		Added:     counts.Added,
		Failed:    counts.Failed,
		Skipped:   counts.Skipped,
		Remaining: len(remaining),
		NextUp:    next,
	}
}

// QueryPreview pairs an upcoming item with the fallback queries that would
// be tried for it.
type QueryPreview struct {
	Item    songlist.Item
	Queries []string
}

// PreviewQueries shows the generated query sequence for the next n
// unprocessed items without touching the network or the ledger.
func PreviewQueries(items []songlist.Item, led *ledger.Ledger, n int) []QueryPreview {
	remaining := led.Remaining(items)
	if n > 0 && len(remaining) > n {
		remaining = remaining[:n]
	}

	previews := make([]QueryPreview, 0, len(remaining))
	for _, item := range remaining {
		previews = append(previews, QueryPreview{
			Item:    item,
			Queries: resolve.Queries(item.Title, item.Artist),
		})
	}
	return previews
}
