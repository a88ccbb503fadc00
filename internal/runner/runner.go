// Package runner drives the batch across the curated song list: it pulls
// unprocessed items from the ledger, resolves candidates for each, and either
// imports with per-candidate fallback (single-phase) or defers the decision
// to a reviewed candidate file (two-phase collect and commit).
package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"songbatch/internal/batch"
	"songbatch/internal/ledger"
	"songbatch/internal/resolve"
	"songbatch/internal/services/importer"
	"songbatch/internal/songlist"
)

// Runner executes batch operations against a locked ledger store. It is
// strictly sequential: items in source-list order, candidates in ranked
// order. Throughput is bounded by the remote API, not local compute.
type Runner struct {
	items    []songlist.Item
	store    *ledger.Store
	resolver *resolve.Resolver
	importer importer.Importer
	token    string
	logger   *slog.Logger
}

// New builds a Runner. Every run is tagged with a fresh run_id so log lines
// from interleaved invocations in the shared log file stay attributable.
func New(items []songlist.Item, store *ledger.Store, resolver *resolve.Resolver, imp importer.Importer, token string, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		items:    items,
		store:    store,
		resolver: resolver,
		importer: imp,
		token:    token,
		logger:   logger.With("component", "runner", "run_id", uuid.NewString()),
	}
}

// RunOptions controls a single-phase run.
type RunOptions struct {
	// Count limits how many unprocessed items are attempted. Zero or
	// negative means all remaining.
	Count int
	// DryRun resolves candidates and reports the import that would happen
	// without invoking the importer or writing an outcome for it.
	// Resolution-stage skips are still recorded.
	DryRun bool
}

// Report aggregates the outcomes of one invocation.
type Report struct {
	Added      int
	Failed     int
	Skipped    int
	WouldAdd   int
	Unselected int
	Remaining  int
}

// Run processes up to opts.Count unprocessed items in list order. Import
// failures are absorbed into ledger records; the returned error is reserved
// for ledger I/O failures and context cancellation.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (Report, error) {
	var report Report

	led, err := r.store.Load()
	if err != nil {
		return report, err
	}

	remaining := led.Remaining(r.items)
	toProcess := limitItems(remaining, opts.Count)
	report.Remaining = len(remaining) - len(toProcess)

	for i, item := range toProcess {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		r.logger.Info("processing song",
			"position", fmt.Sprintf("%d/%d", i+1, len(toProcess)),
			"title", item.Title, "artist", item.Artist)
		if err := r.processItem(ctx, led, item, opts.DryRun, &report); err != nil {
			return report, err
		}
	}
	return report, nil
}

func (r *Runner) processItem(ctx context.Context, led *ledger.Ledger, item songlist.Item, dryRun bool, report *Report) error {
	candidates, usedQuery := r.resolver.Resolve(ctx, item.Title, item.Artist)
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(candidates) == 0 {
		reason := ledger.ReasonNoTitleMatch
		if usedQuery == "" {
			reason = ledger.ReasonNoResults
		}
		r.logger.Info("skipping song", "title", item.Title, "reason", reason)
		led.MarkSkipped(item, reason)
		report.Skipped++
		return r.store.Save(led)
	}

	if dryRun {
		first := candidates[0]
		r.logger.Info("would import",
			"title", first.Title, "artist", first.Artist,
			"song_id", first.ID, "popularity", first.Popularity)
		report.WouldAdd++
		return nil
	}

	for _, cand := range candidates {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.logger.Info("trying candidate",
			"title", cand.Title, "artist", cand.Artist,
			"song_id", cand.ID, "popularity", cand.Popularity)
		err := r.importer.Import(ctx, cand.ID, r.token)
		if err == nil {
			r.logger.Info("added song", "title", item.Title, "song_id", cand.ID)
			led.MarkAdded(item, cand.ID)
			report.Added++
			return r.store.Save(led)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.logger.Warn("candidate failed", "song_id", cand.ID, "error", err)
	}

	r.logger.Warn("all candidates failed", "title", item.Title, "candidates", len(candidates))
	led.MarkFailed(item, ledger.ReasonAllCandidatesFailed)
	report.Failed++
	return r.store.Save(led)
}

// CollectOptions controls the two-phase search pass.
type CollectOptions struct {
	// Count limits how many unprocessed items are resolved. Zero or
	// negative means all remaining.
	Count int
	// TopN caps how many ranked candidates each entry retains.
	TopN int
	// OutputPath is where the candidate batch document is written.
	OutputPath string
}

// Collect resolves candidates for up to opts.Count unprocessed items and
// writes them as a reviewable batch document. The ledger is read for the
// resume boundary but never mutated, and no import runs.
func (r *Runner) Collect(ctx context.Context, opts CollectOptions) ([]batch.Entry, error) {
	led, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	toProcess := limitItems(led.Remaining(r.items), opts.Count)

	entries := make([]batch.Entry, 0, len(toProcess))
	for _, item := range toProcess {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidates, usedQuery := r.resolver.Resolve(ctx, item.Title, item.Artist)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if opts.TopN > 0 && len(candidates) > opts.TopN {
			candidates = candidates[:opts.TopN]
		}
		if candidates == nil {
			candidates = []resolve.Candidate{}
		}
		r.logger.Info("collected candidates",
			"title", item.Title, "artist", item.Artist,
			"candidates", len(candidates), "query", usedQuery)
		entries = append(entries, batch.Entry{
			Title:        item.Title,
			Artist:       item.Artist,
			OriginalLine: item.Key,
			Candidates:   candidates,
			SelectedID:   nil,
			MatchedQuery: usedQuery,
		})
	}

	if err := batch.Save(opts.OutputPath, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CommitOptions controls the two-phase import pass.
type CommitOptions struct {
	// Path locates the reviewed candidate batch document.
	Path string
	// MarkUnselectedSkipped records a terminal skip for entries the
	// reviewer left undecided instead of leaving them for a later pass.
	MarkUnselectedSkipped bool
}

// Commit imports the reviewer's selections from a batch document. Each
// selected ID is imported directly with no candidate cascade. An unreadable
// document is fatal and leaves the ledger untouched.
func (r *Runner) Commit(ctx context.Context, opts CommitOptions) (Report, error) {
	var report Report

	entries, err := batch.Load(opts.Path)
	if err != nil {
		return report, err
	}

	led, err := r.store.Load()
	if err != nil {
		return report, err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		key := entry.Key()
		if led.IsProcessed(key) {
			r.logger.Info("already processed", "title", entry.Title, "artist", entry.Artist)
			continue
		}
		item := songlist.Item{Title: entry.Title, Artist: entry.Artist, Key: key}

		selected := entry.Selected()
		if selected == "" {
			if !opts.MarkUnselectedSkipped {
				r.logger.Info("no selection, leaving for later", "title", entry.Title)
				report.Unselected++
				continue
			}
			r.logger.Info("no selection, marking skipped", "title", entry.Title)
			led.MarkSkipped(item, ledger.ReasonNoSelection)
			report.Skipped++
			if err := r.store.Save(led); err != nil {
				return report, err
			}
			continue
		}

		r.logger.Info("importing selection", "title", entry.Title, "song_id", selected)
		importErr := r.importer.Import(ctx, selected, r.token)
		if importErr == nil {
			led.MarkAdded(item, selected)
			report.Added++
		} else {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			r.logger.Warn("selection failed", "song_id", selected, "error", importErr)
			led.MarkFailed(item, fmt.Sprintf("Failed with id %s", selected))
			report.Failed++
		}
		if err := r.store.Save(led); err != nil {
			return report, err
		}
	}
	return report, nil
}

func limitItems(items []songlist.Item, count int) []songlist.Item {
	if count <= 0 || count >= len(items) {
		return items
	}
	return items[:count]
}
