package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"songbatch/internal/runner"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run [count]",
		Short: "Resolve and import the next songs from the list",
		Args:  cobra.MaximumNArgs(1),
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

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			r, err := buildRunner(cmd.Context(), ctx, store, items)
			if err != nil {
				return err
			}

			report, err := r.Run(cmd.Context(), runner.RunOptions{Count: count, DryRun: dryRun})
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), "Dry run: no songs were imported.")
			}
			printReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve candidates but do not import anything")
	return cmd
}
