package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"songbatch/internal/config"
	"songbatch/internal/ledger"
	"songbatch/internal/resolve"
	"songbatch/internal/runner"
	"songbatch/internal/services/importer"
	"songbatch/internal/services/rhythm"
	"songbatch/internal/songlist"
)

func loadItems(cfg *config.Config) ([]songlist.Item, error) {
	items, err := songlist.LoadFile(cfg.Paths.SongList)
	if err != nil {
		return nil, fmt.Errorf("load song list: %w", err)
	}
	return items, nil
}

func openStore(cfg *config.Config) (*ledger.Store, error) {
	return ledger.Open(cfg.Paths.Ledger)
}

// buildRunner wires the full single-run object graph: authenticated API
// session, resolver, importer, and the locked ledger store the caller is
// responsible for closing.
func buildRunner(ctx context.Context, cmdCtx *commandContext, store *ledger.Store, items []songlist.Item) (*runner.Runner, error) {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := cmdCtx.ensureLogger()
	if err != nil {
		return nil, err
	}

	client, err := rhythm.New(rhythm.Config{
		BaseURL:    cfg.API.BaseURL,
		AuthURL:    cfg.API.AuthURL,
		APIKey:     cfg.API.APIKey,
		PageLimit:  cfg.API.PageLimit,
		HTTPClient: &http.Client{Timeout: time.Duration(cfg.API.RequestTimeout) * time.Second},
	})
	if err != nil {
		return nil, err
	}

	token, err := client.Authenticate(ctx)
	if err != nil {
		return nil, err
	}
	session := rhythm.NewSession(client, token)

	imp, err := importer.NewScript(cfg.Importer.Command, time.Duration(cfg.Importer.Timeout)*time.Second)
	if err != nil {
		return nil, err
	}

	resolver := resolve.New(session, logger)
	return runner.New(items, store, resolver, imp, token, logger), nil
}

// countArg parses an optional positional count, defaulting when absent.
func countArg(args []string, fallback int) (int, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	count, err := strconv.Atoi(args[0])
	if err != nil || count < 1 {
		return 0, fmt.Errorf("count must be a positive integer, got %q", args[0])
	}
	return count, nil
}

func printReport(cmd *cobra.Command, report runner.Report) {
	out := cmd.OutOrStdout()
	if report.WouldAdd > 0 {
		fmt.Fprintf(out, "Would add:  %d\n", report.WouldAdd)
	}
	fmt.Fprintf(out, "Added:      %d\n", report.Added)
	fmt.Fprintf(out, "Failed:     %d\n", report.Failed)
	fmt.Fprintf(out, "Skipped:    %d\n", report.Skipped)
	if report.Unselected > 0 {
		fmt.Fprintf(out, "Undecided:  %d\n", report.Unselected)
	}
	fmt.Fprintf(out, "Remaining:  %d\n", report.Remaining)
}
