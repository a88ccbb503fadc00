package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"songbatch/internal/runner"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preview [n]",
		Short: "Show the search queries that would be tried for upcoming songs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := countArg(args, 5)
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

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			led, err := store.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			previews := runner.PreviewQueries(items, led, n)
			if len(previews) == 0 {
				fmt.Fprintln(out, "All songs have been processed.")
				return nil
			}
			for _, preview := range previews {
				fmt.Fprintf(out, "%s — %s\n", preview.Item.Title, preview.Item.Artist)
				for i, query := range preview.Queries {
					fmt.Fprintf(out, "  %d. %q\n", i+1, query)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
