package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"kharcha/internal/cli"
	"kharcha/internal/export"
	"kharcha/internal/model"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export data to CSV",
	}

	cmd.AddCommand(exportExpensesCmd())
	cmd.AddCommand(exportDebtsCmd())

	return cmd
}

func exportExpensesCmd() *cobra.Command {
	var (
		output   string
		fromFlag string
		toFlag   string
	)

	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Export expenses to a CSV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			from, err := parseDateFlag(fromFlag, "from")
			if err != nil {
				return err
			}
			to, err := parseDateFlag(toFlag, "to")
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			var expenses []model.Expense
			if from != nil || to != nil {
				start, end := exportRange(from, to)
				expenses, err = store.GetExpensesByDateRange(ctx, start, end)
			} else {
				expenses, err = store.ListExpenses(ctx, 0)
			}
			if err != nil {
				return fmt.Errorf("loading expenses: %w", err)
			}

			if err := export.WriteExpensesFile(output, expenses); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d expense(s) to %s", len(expenses), output)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "expenses.csv", "Output file path")
	cmd.Flags().StringVar(&fromFlag, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "End date (YYYY-MM-DD)")

	return cmd
}

// exportRange widens a half-specified date filter to a full range. The open
// side stretches far enough to cover anything recorded.
func exportRange(from, to *time.Time) (time.Time, time.Time) {
	start := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}
	return start, end
}

func exportDebtsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "debts",
		Short: "Export debts to a CSV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			debts, err := store.ListDebts(ctx)
			if err != nil {
				return fmt.Errorf("loading debts: %w", err)
			}

			if err := export.WriteDebtsFile(output, debts); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d debt(s) to %s", len(debts), output)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "debts.csv", "Output file path")

	return cmd
}
