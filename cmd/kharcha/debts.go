package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"kharcha/internal/cli"
	"kharcha/internal/model"
	"kharcha/internal/service"
)

func debtsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debts",
		Short: "Track debts and plan their payoff",
	}

	cmd.AddCommand(debtsAddCmd())
	cmd.AddCommand(debtsListCmd())
	cmd.AddCommand(debtsPlanCmd())
	cmd.AddCommand(debtsDeleteCmd())

	return cmd
}

func debtsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name> <balance> <interest-rate> <min-payment>",
		Short: "Add a debt to track",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			balance, err := parseNumberArg(args[1], "balance")
			if err != nil {
				return err
			}
			rate, err := parseNumberArg(args[2], "interest rate")
			if err != nil {
				return err
			}
			minPayment, err := parseNumberArg(args[3], "minimum payment")
			if err != nil {
				return err
			}

			debt := model.Debt{
				ID:           uuid.NewString(),
				Name:         args[0],
				Balance:      balance,
				InterestRate: rate,
				MinPayment:   minPayment,
			}
			if err := debt.Validate(); err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			if err := store.SaveDebt(ctx, &debt); err != nil {
				return fmt.Errorf("saving debt: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Added debt %q: %s at %.1f%% APR", debt.Name, cli.FormatAmount(debt.Balance), debt.InterestRate,
			)))
			return nil
		},
	}

	return cmd
}

func debtsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked debts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			debts, err := store.ListDebts(ctx)
			if err != nil {
				return fmt.Errorf("listing debts: %w", err)
			}

			if len(debts) == 0 {
				fmt.Println(cli.FormatInfo("No debts tracked. Try: kharcha debts add \"Credit card\" 45000 36 2000"))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("%d debt(s)", len(debts))))
			fmt.Println(cli.RenderTable(
				[]string{"ID", "Name", "Balance", "APR", "Min payment"},
				debtRows(debts),
			))
			return nil
		},
	}

	return cmd
}

func debtRows(debts []model.Debt) [][]string {
	rows := make([][]string, 0, len(debts))
	for _, d := range debts {
		rows = append(rows, []string{
			shortID(d.ID),
			d.Name,
			cli.FormatAmount(d.Balance),
			fmt.Sprintf("%.1f%%", d.InterestRate),
			cli.FormatAmount(d.MinPayment),
		})
	}
	return rows
}

func debtsPlanCmd() *cobra.Command {
	var methodFlag string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Order debts for payoff",
		Long: `Order tracked debts into a payoff plan. The avalanche method pays
highest-interest debts first and minimizes total interest; the snowball
method pays smallest balances first and clears individual debts sooner.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			method, err := model.ParsePayoffMethod(methodFlag)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			debts, err := store.ListDebts(ctx)
			if err != nil {
				return fmt.Errorf("listing debts: %w", err)
			}

			if len(debts) == 0 {
				fmt.Println(cli.FormatInfo("No debts to plan. Add some with: kharcha debts add"))
				return nil
			}

			fmt.Println(renderPayoffPlan(model.PlanPayoff(debts, method), method))
			return nil
		},
	}

	cmd.Flags().StringVar(&methodFlag, "method", string(model.PayoffAvalanche), "Payoff method: avalanche or snowball")

	return cmd
}

// renderPayoffPlan numbers the debts in payoff order, with the figure the
// chosen method ranks by listed alongside each one.
func renderPayoffPlan(ordered []model.Debt, method model.PayoffMethod) string {
	var b strings.Builder

	b.WriteString(cli.FormatTitle(fmt.Sprintf("Payoff plan (%s)", method)))
	b.WriteString("\n")
	for i, d := range ordered {
		fmt.Fprintf(&b, "%d. %s: %s at %.1f%% APR, minimum %s\n",
			i+1, cli.BoldStyle.Render(d.Name), cli.FormatAmount(d.Balance), d.InterestRate, cli.FormatAmount(d.MinPayment))
	}
	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render("Pay minimums on everything, then put all extra money toward #1."))

	return b.String()
}

func debtsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tracked debt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			id, err := resolveDebtID(ctx, store, args[0])
			if err != nil {
				return err
			}
			if err := store.DeleteDebt(ctx, id); err != nil {
				return fmt.Errorf("deleting debt: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted debt %s", shortID(id))))
			return nil
		},
	}

	return cmd
}

// resolveDebtID expands a short ID prefix into the full debt ID, accepting
// the debt's name as well since the list is small.
func resolveDebtID(ctx context.Context, store service.Store, idOrName string) (string, error) {
	if idOrName == "" {
		return "", fmt.Errorf("debt ID cannot be empty")
	}

	debts, err := store.ListDebts(ctx)
	if err != nil {
		return "", fmt.Errorf("resolving debt ID: %w", err)
	}

	var matches []string
	for _, d := range debts {
		if d.ID == idOrName {
			return d.ID, nil
		}
		if strings.HasPrefix(d.ID, idOrName) || strings.EqualFold(d.Name, idOrName) {
			matches = append(matches, d.ID)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no debt matches %q", idOrName)
	default:
		return "", fmt.Errorf("%q matches %d debts, use more characters", idOrName, len(matches))
	}
}
