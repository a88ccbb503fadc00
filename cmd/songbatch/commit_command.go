package main

import (
	"github.com/spf13/cobra"

	"songbatch/internal/config"
	"songbatch/internal/runner"
)

func newCommitCommand(ctx *commandContext) *cobra.Command {
	var markUnselectedSkipped bool

	cmd := &cobra.Command{
		Use:   "commit <file>",
		Short: "Import the selections from a reviewed candidate file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
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

			report, err := r.Commit(cmd.Context(), runner.CommitOptions{
				Path:                  path,
				MarkUnselectedSkipped: markUnselectedSkipped,
			})
			if err != nil {
				return err
			}

			printReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&markUnselectedSkipped, "mark-unselected-skipped", false,
		"Record a terminal skip for entries without a selectedId")
	return cmd
}
