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

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Track progress toward savings goals",
	}

	cmd.AddCommand(goalsAddCmd())
	cmd.AddCommand(goalsListCmd())
	cmd.AddCommand(goalsAddFundsCmd())
	cmd.AddCommand(goalsDeleteCmd())

	return cmd
}

func goalsAddCmd() *cobra.Command {
	var byFlag string

	cmd := &cobra.Command{
		Use:   "add <name> <target>",
		Short: "Add a savings goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			target, err := parseNumberArg(args[1], "target")
			if err != nil {
				return err
			}
			by, err := parseDateFlag(byFlag, "by")
			if err != nil {
				return err
			}

			goal := model.SavingsGoal{
				ID:     uuid.NewString(),
				Name:   args[0],
				Target: target,
			}
			if by != nil {
				goal.TargetDate = *by
			}
			if err := goal.Validate(); err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			if err := store.SaveGoal(ctx, &goal); err != nil {
				return fmt.Errorf("saving goal: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Added goal %q with target %s", goal.Name, cli.FormatAmount(goal.Target),
			)))
			return nil
		},
	}

	cmd.Flags().StringVar(&byFlag, "by", "", "Target date for the goal (YYYY-MM-DD)")

	return cmd
}

func goalsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List savings goals with progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			goals, err := store.ListGoals(ctx)
			if err != nil {
				return fmt.Errorf("listing goals: %w", err)
			}

			if len(goals) == 0 {
				fmt.Println(cli.FormatInfo("No savings goals yet. Try: kharcha goals add \"Emergency fund\" 100000"))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("%d goal(s)", len(goals))))
			fmt.Println(cli.RenderTable(
				[]string{"ID", "Name", "Saved", "Target", "Progress", "By"},
				goalRows(goals),
			))
			return nil
		},
	}

	return cmd
}

func goalRows(goals []model.SavingsGoal) [][]string {
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		by := "-"
		if !g.TargetDate.IsZero() {
			by = g.TargetDate.Format("2006-01-02")
		}
		rows = append(rows, []string{
			shortID(g.ID),
			g.Name,
			cli.FormatAmount(g.Saved),
			cli.FormatAmount(g.Target),
			fmt.Sprintf("%.1f%%", g.Progress()),
			by,
		})
	}
	return rows
}

func goalsAddFundsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-funds <id> <amount>",
		Short: "Record money put toward a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseNumberArg(args[1], "amount")
			if err != nil {
				return err
			}
			if amount <= 0 {
				return fmt.Errorf("amount must be positive, got %.2f", amount)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			id, err := resolveGoalID(ctx, store, args[0])
			if err != nil {
				return err
			}
			if err := store.AddToGoal(ctx, id, amount); err != nil {
				return fmt.Errorf("adding funds: %w", err)
			}

			goal, err := findGoal(ctx, store, id)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Added %s to %q: %s of %s (%.1f%%)",
				cli.FormatAmount(amount), goal.Name,
				cli.FormatAmount(goal.Saved), cli.FormatAmount(goal.Target), goal.Progress(),
			)))
			return nil
		},
	}

	return cmd
}

func goalsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			id, err := resolveGoalID(ctx, store, args[0])
			if err != nil {
				return err
			}
			if err := store.DeleteGoal(ctx, id); err != nil {
				return fmt.Errorf("deleting goal: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted goal %s", shortID(id))))
			return nil
		},
	}

	return cmd
}

// resolveGoalID expands a short ID prefix into the full goal ID, accepting
// the goal's name as well since the list is small.
func resolveGoalID(ctx context.Context, store service.Store, idOrName string) (string, error) {
	if idOrName == "" {
		return "", fmt.Errorf("goal ID cannot be empty")
	}

	goals, err := store.ListGoals(ctx)
	if err != nil {
		return "", fmt.Errorf("resolving goal ID: %w", err)
	}

	var matches []string
	for _, g := range goals {
		if g.ID == idOrName {
			return g.ID, nil
		}
		if strings.HasPrefix(g.ID, idOrName) || strings.EqualFold(g.Name, idOrName) {
			matches = append(matches, g.ID)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no goal matches %q", idOrName)
	default:
		return "", fmt.Errorf("%q matches %d goals, use more characters", idOrName, len(matches))
	}
}

func findGoal(ctx context.Context, store service.Store, id string) (*model.SavingsGoal, error) {
	goals, err := store.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading goal: %w", err)
	}
	for i := range goals {
		if goals[i].ID == id {
			return &goals[i], nil
		}
	}
	return nil, fmt.Errorf("no goal matches %q", id)
}
