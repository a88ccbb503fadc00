package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"songbatch/internal/runner"
)

const nextUpPreview = 5

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show batch progress and the next songs up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			status := runner.BuildStatus(items, led, nextUpPreview)
			out := cmd.OutOrStdout()

			rows := [][]string{
				{"Total songs", strconv.Itoa(status.Total)},
				{"Added", strconv.Itoa(status.Added)},
				{"Failed", strconv.Itoa(status.Failed)},
				{"Skipped", strconv.Itoa(status.Skipped)},
				{"Remaining", strconv.Itoa(status.Remaining)},
			}
			fmt.Fprintln(out, renderTable([]string{"Progress", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))

			if len(status.NextUp) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Next up:")
				for _, item := range status.NextUp {
					fmt.Fprintf(out, "  - %s — %s\n", item.Title, item.Artist)
				}
				if more := status.Remaining - len(status.NextUp); more > 0 {
					fmt.Fprintf(out, "  ... and %d more\n", more)
				}
			}
			return nil
		},
	}
}
