package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the progress ledger and start over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Reset()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if removed {
				fmt.Fprintln(out, "Progress reset.")
			} else {
				fmt.Fprintln(out, "No progress file to reset.")
			}
			return nil
		},
	}
}
