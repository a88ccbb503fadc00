package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"songbatch/internal/runner"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var output string
	var top int

	cmd := &cobra.Command{
		Use:   "search [count]",
		Short: "Collect candidates for review without importing",
		Long: "Resolves candidates for the next songs and writes them to a JSON file.\n" +
			"Edit the file to set \"selectedId\" on the entries to import, then run\n" +
			"'songbatch commit <file>'.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := countArg(args, 1)
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			items, err := loadItems(cfg)
			if err != nil {
				return err
			}

			outputPath := output
			if outputPath == "" {
				outputPath = cfg.Paths.Candidates
			}
			topN := top
			if topN <= 0 {
				topN = cfg.Run.TopCandidates
			}

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			r, err := buildRunner(cmd.Context(), ctx, store, items)
			if err != nil {
				return err
			}

			entries, err := r.Collect(cmd.Context(), runner.CollectOptions{
				Count:      count,
				TopN:       topN,
				OutputPath: outputPath,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, entry := range entries {
				fmt.Fprintf(out, "%s — %s\n", entry.Title, entry.Artist)
				if len(entry.Candidates) == 0 {
					fmt.Fprintln(out, "  no matching candidates")
					continue
				}
				for i, cand := range entry.Candidates {
					fmt.Fprintf(out, "  %d. %s — %s (id: %s, popularity: %g)\n",
						i+1, cand.Title, cand.Artist, cand.ID, cand.Popularity)
				}
			}
			fmt.Fprintf(out, "\nSaved %d entries to %s\n", len(entries), outputPath)
			fmt.Fprintf(out, "Set \"selectedId\" on the songs to import, then run: songbatch commit %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Candidate file destination (default from config)")
	cmd.Flags().IntVar(&top, "top", 0, "Candidates to keep per song (default from config)")
	return cmd
}
