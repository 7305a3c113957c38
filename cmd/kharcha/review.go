package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kharcha/internal/classifier"
	"kharcha/internal/cli"
	"kharcha/internal/model"
	"kharcha/internal/service"
)

func reviewCmd() *cobra.Command {
	var (
		threshold float64
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review low-confidence expenses",
		Long: `Walk through expenses the parser was unsure about and accept, correct,
or skip each one. Accepting or correcting pins the stored category and
records the note as a labeled example, so the next 'kharcha train' run
learns from your decisions.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			handler := cli.NewInterruptHandler(os.Stdout)
			ctx := handler.HandleInterrupts(cmd.Context(), "Run 'kharcha review' to continue where you left off.")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			expenses, err := store.ListExpenses(ctx, 0)
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}

			candidates := reviewCandidates(expenses, threshold, limit)
			if len(candidates) == 0 {
				fmt.Println(cli.FormatInfo("Nothing to review. Every expense meets the confidence threshold."))
				return nil
			}
			fmt.Println(cli.FormatTitle(fmt.Sprintf("%d expenses to review", len(candidates))))

			reviewer := cli.NewReviewer(nil, nil)
			var accepted, corrected, skipped int
			for _, expense := range candidates {
				decision, err := reviewer.ReviewExpense(ctx, expense)
				if err != nil {
					if errors.Is(err, cli.ErrInputCancelled) {
						break
					}
					return err
				}
				if decision.Skipped {
					skipped++
					continue
				}
				if err := applyDecision(ctx, store, expense, decision); err != nil {
					return err
				}
				if decision.Corrected {
					corrected++
				} else {
					accepted++
				}
			}

			if handler.WasInterrupted() {
				return nil
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Review finished: %d accepted, %d corrected, %d skipped", accepted, corrected, skipped)))
			if accepted+corrected > 0 {
				fmt.Println(cli.SubtleStyle.Render("Run 'kharcha train' to fold the new labels into the model."))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", classifier.DefaultConfidenceThreshold, "Review expenses below this confidence")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum expenses to review in one sitting (0 = all)")

	return cmd
}

// reviewCandidates filters to expenses below the confidence threshold,
// keeping the most-recent-first order the store returns.
func reviewCandidates(expenses []model.Expense, threshold float64, limit int) []model.Expense {
	var out []model.Expense
	for _, e := range expenses {
		if e.Confidence >= threshold {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// applyDecision persists one review decision: the category assignment, and
// the note as a labeled example when there is a note to learn from.
func applyDecision(ctx context.Context, store service.Store, expense model.Expense, decision cli.ReviewDecision) error {
	if err := store.UpdateExpenseCategory(ctx, expense.ID, decision.Category); err != nil {
		return fmt.Errorf("failed to update expense %s: %w", expense.ID, err)
	}
	if expense.Note == "" {
		return nil
	}
	example := model.TrainingExample{Text: expense.Note, Label: decision.Category}
	if err := store.SaveTrainingExample(ctx, example); err != nil {
		return fmt.Errorf("failed to record training example: %w", err)
	}
	return nil
}
