package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"kharcha/internal/cli"
	"kharcha/internal/common"
	"kharcha/internal/model"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Set and check the monthly budget",
	}

	cmd.AddCommand(budgetSetCmd())
	cmd.AddCommand(budgetShowCmd())

	return cmd
}

func budgetSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <monthly-income> <savings-percent>",
		Short: "Set the monthly income and savings target",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			income, err := parseNumberArg(args[0], "monthly income")
			if err != nil {
				return err
			}
			percent, err := parseNumberArg(args[1], "savings percent")
			if err != nil {
				return err
			}

			budget, err := model.NewBudget(income, percent)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			if err := store.SaveBudget(ctx, budget); err != nil {
				return fmt.Errorf("saving budget: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Budget set: income %s, saving %.0f%% (%s)",
				cli.FormatAmount(budget.MonthlyIncome),
				budget.SavingsPercent,
				cli.FormatAmount(budget.RecommendedSavings),
			)))
			return nil
		},
	}

	return cmd
}

func budgetShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the budget with current spending",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			budget, err := store.GetBudget(ctx)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					fmt.Println(cli.FormatInfo("No budget set. Try: kharcha budget set 50000 20"))
					return nil
				}
				return fmt.Errorf("loading budget: %w", err)
			}

			total, err := store.GetExpenseTotal(ctx, nil, nil)
			if err != nil {
				return fmt.Errorf("totaling expenses: %w", err)
			}

			fmt.Println(renderBudget(budget, total))
			return nil
		},
	}

	return cmd
}

// renderBudget lays out the budget next to live spending, the same figures
// the HTTP API and MCP resource report.
func renderBudget(budget *model.Budget, total float64) string {
	fields := [][2]string{
		{"Monthly income", cli.FormatAmount(budget.MonthlyIncome)},
		{"Savings target", fmt.Sprintf("%.0f%% (%s)", budget.SavingsPercent, cli.FormatAmount(budget.RecommendedSavings))},
		{"Spent so far", cli.FormatAmount(total)},
		{"Leftover", cli.FormatAmount(budget.Leftover(total))},
	}
	return cli.RenderBox("Budget", cli.RenderFields(fields))
}
