package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"kharcha/internal/cli"
	"kharcha/internal/export"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import data from CSV",
	}

	cmd.AddCommand(importExpensesCmd())

	return cmd
}

func importExpensesCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "expenses <file.csv>",
		Short: "Import expenses from a CSV file",
		Long: `Import expenses from a CSV file. The header must name at least Category
and Amount columns; a Date column is used when present, otherwise rows take
the --date fallback. Importing the same file again is safe, rows already
recorded are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			fallback, err := parseDateFlag(dateFlag, "date")
			if err != nil {
				return err
			}
			fallbackDate := todayUTC()
			if fallback != nil {
				fallbackDate = *fallback
			}

			expenses, err := export.ReadExpensesFile(args[0], fallbackDate)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			if err := store.SaveExpenses(ctx, expenses); err != nil {
				return fmt.Errorf("saving expenses: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d expense(s) from %s", len(expenses), args[0])))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Date for rows without one (YYYY-MM-DD, defaults to today)")

	return cmd
}

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
