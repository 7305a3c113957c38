package main

import (
	"github.com/spf13/cobra"

	"kharcha/internal/tui"
)

func captureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capture",
		Short: "Capture expenses interactively",
		Long: `Open the quick-capture screen: type expense sentences, watch the live
category suggestion, and press enter to save each one. The screen keeps
a running total for today and a list of everything captured this
session.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			p, _, err := initParser()
			if err != nil {
				return err
			}

			return tui.Run(ctx, store, p)
		},
	}
}
