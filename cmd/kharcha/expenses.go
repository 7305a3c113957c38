package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"kharcha/internal/cli"
	"kharcha/internal/model"
	"kharcha/internal/service"
)

// topMerchantCount caps the merchant section of the spending summary.
const topMerchantCount = 5

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "List, inspect and manage recorded expenses",
	}

	cmd.AddCommand(expensesListCmd())
	cmd.AddCommand(expensesShowCmd())
	cmd.AddCommand(expensesSummaryCmd())
	cmd.AddCommand(expensesDeleteCmd())
	cmd.AddCommand(expensesResetCmd())

	return cmd
}

func expensesListCmd() *cobra.Command {
	var (
		limit    int
		category string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded expenses, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			expenses, err := fetchExpenses(ctx, store, category, limit)
			if err != nil {
				return err
			}

			if len(expenses) == 0 {
				fmt.Println(cli.FormatInfo(`No expenses recorded yet. Try: kharcha parse --log "spent 450 on groceries"`))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("%d expense(s)", len(expenses))))
			fmt.Println(cli.RenderTable(
				[]string{"ID", "Date", "Category", "Amount", "Merchant", "Note"},
				expenseRows(expenses),
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of expenses to show (0 for all)")
	cmd.Flags().StringVar(&category, "category", "", "Only show expenses in this category")

	return cmd
}

// fetchExpenses loads expenses for the list command, optionally filtered to
// one category. limit <= 0 means no cap.
func fetchExpenses(ctx context.Context, store service.Store, category string, limit int) ([]model.Expense, error) {
	if category == "" {
		expenses, err := store.ListExpenses(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("listing expenses: %w", err)
		}
		return expenses, nil
	}

	cat, err := resolveCategory(category)
	if err != nil {
		return nil, err
	}
	expenses, err := store.GetExpensesByCategory(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	if limit > 0 && len(expenses) > limit {
		expenses = expenses[:limit]
	}
	return expenses, nil
}

// expenseRows formats expenses for tabular output. IDs are shortened to
// eight characters; list, show and delete accept the short form back as a
// prefix.
func expenseRows(expenses []model.Expense) [][]string {
	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []string{
			shortID(e.ID),
			e.Date.Format("2006-01-02"),
			string(e.Category),
			cli.FormatAmount(e.Amount),
			e.Merchant,
			truncate(e.Note, 40),
		})
	}
	return rows
}

func expensesShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one expense in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			id, err := resolveExpenseID(ctx, store, args[0])
			if err != nil {
				return err
			}
			expense, err := store.GetExpense(ctx, id)
			if err != nil {
				return fmt.Errorf("loading expense: %w", err)
			}

			fmt.Println(renderExpense(expense))
			return nil
		},
	}

	return cmd
}

// renderExpense lays out every recorded field of one expense.
func renderExpense(e *model.Expense) string {
	fields := [][2]string{
		{"ID", e.ID},
		{"Date", e.Date.Format("2006-01-02")},
		{"Amount", cli.FormatAmount(e.Amount)},
		{"Category", fmt.Sprintf("%s %s", e.Category, cli.FormatConfidence(e.Confidence))},
	}
	if e.Merchant != "" {
		fields = append(fields, [2]string{"Merchant", e.Merchant})
	}
	if e.PaymentMethod != "" {
		fields = append(fields, [2]string{"Payment", string(e.PaymentMethod)})
	}
	if e.Note != "" {
		fields = append(fields, [2]string{"Note", e.Note})
	}
	fields = append(fields, [2]string{"Source", string(e.Source)})

	return cli.RenderBox("Expense", cli.RenderFields(fields))
}

func expensesSummaryCmd() *cobra.Command {
	var fromFlag, toFlag string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize spending by category and merchant",
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

			byCategory, err := store.GetCategorySummary(ctx, from, to)
			if err != nil {
				return fmt.Errorf("summarizing by category: %w", err)
			}
			byMerchant, err := store.GetMerchantSummary(ctx, from, to)
			if err != nil {
				return fmt.Errorf("summarizing by merchant: %w", err)
			}
			total, err := store.GetExpenseTotal(ctx, from, to)
			if err != nil {
				return fmt.Errorf("totaling expenses: %w", err)
			}

			fmt.Println(renderSummary(byCategory, byMerchant, total))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "End date (YYYY-MM-DD)")

	return cmd
}

// renderSummary builds the spending summary output. Categories lead with the
// biggest line items; merchants are capped at the top few.
func renderSummary(byCategory map[model.Category]float64, byMerchant map[string]float64, total float64) string {
	var b strings.Builder

	b.WriteString(cli.FormatTitle("Spending Summary"))
	b.WriteString("\n")

	if len(byCategory) == 0 {
		b.WriteString(cli.FormatInfo("No expenses recorded for this period."))
		return b.String()
	}

	rows := make([][]string, 0, len(byCategory))
	for _, entry := range rankSpend(categorySpend(byCategory), 0) {
		rows = append(rows, []string{entry.name, cli.FormatAmount(entry.spent)})
	}
	b.WriteString(cli.RenderTable([]string{"Category", "Spent"}, rows))
	b.WriteString("\n")

	if len(byMerchant) > 0 {
		merchantRows := make([][]string, 0, topMerchantCount)
		for _, entry := range rankSpend(merchantSpend(byMerchant), topMerchantCount) {
			merchantRows = append(merchantRows, []string{entry.name, cli.FormatAmount(entry.spent)})
		}
		b.WriteString(cli.BoldStyle.Render("Top merchants"))
		b.WriteString("\n")
		b.WriteString(cli.RenderTable([]string{"Merchant", "Spent"}, merchantRows))
		b.WriteString("\n")
	}

	b.WriteString(cli.BoldStyle.Render(fmt.Sprintf("Total: %s", cli.FormatAmount(total))))
	return b.String()
}

type spendEntry struct {
	name  string
	spent float64
}

func categorySpend(byCategory map[model.Category]float64) []spendEntry {
	entries := make([]spendEntry, 0, len(byCategory))
	for cat, spent := range byCategory {
		entries = append(entries, spendEntry{name: string(cat), spent: spent})
	}
	return entries
}

func merchantSpend(byMerchant map[string]float64) []spendEntry {
	entries := make([]spendEntry, 0, len(byMerchant))
	for merchant, spent := range byMerchant {
		entries = append(entries, spendEntry{name: merchant, spent: spent})
	}
	return entries
}

// rankSpend orders entries by spend descending, breaking ties by name, and
// keeps the top n. n <= 0 keeps everything.
func rankSpend(entries []spendEntry, n int) []spendEntry {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].spent != entries[j].spent {
			return entries[i].spent > entries[j].spent
		}
		return entries[i].name < entries[j].name
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func expensesDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			id, err := resolveExpenseID(ctx, store, args[0])
			if err != nil {
				return err
			}
			if err := store.DeleteExpense(ctx, id); err != nil {
				return fmt.Errorf("deleting expense: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted expense %s", shortID(id))))
			return nil
		},
	}

	return cmd
}

func expensesResetCmd() *cobra.Command {
	var (
		beforeFlag string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete recorded expenses",
		Long: `Delete recorded expenses, either everything or only those dated before a
cutoff. Training examples and the trained model are not touched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			before, err := parseDateFlag(beforeFlag, "before")
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			if !force {
				question := "Delete all recorded expenses?"
				if before != nil {
					question = fmt.Sprintf("Delete expenses dated before %s?", before.Format("2006-01-02"))
				}
				ok, err := cli.NewReviewer(nil, nil).Confirm(ctx, question)
				if err != nil {
					if errors.Is(err, cli.ErrInputCancelled) {
						fmt.Println(cli.FormatInfo("Reset cancelled."))
						return nil
					}
					return err
				}
				if !ok {
					fmt.Println(cli.FormatInfo("Reset cancelled."))
					return nil
				}
			}

			removed, err := store.ResetExpenses(ctx, before)
			if err != nil {
				return fmt.Errorf("resetting expenses: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Removed %d expense(s)", removed)))
			return nil
		},
	}

	cmd.Flags().StringVar(&beforeFlag, "before", "", "Only delete expenses dated before this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}

// resolveCategory matches typed input against the closed category set,
// ignoring case so "dining" works as well as "Dining".
func resolveCategory(s string) (model.Category, error) {
	for _, cat := range model.AllCategories() {
		if strings.EqualFold(string(cat), s) {
			return cat, nil
		}
	}
	return model.ParseCategory(s)
}

// resolveExpenseID expands a short ID prefix into the full expense ID. An
// exact match wins; otherwise the prefix must identify exactly one expense.
func resolveExpenseID(ctx context.Context, store service.Store, idOrPrefix string) (string, error) {
	if idOrPrefix == "" {
		return "", fmt.Errorf("expense ID cannot be empty")
	}

	expenses, err := store.ListExpenses(ctx, 0)
	if err != nil {
		return "", fmt.Errorf("resolving expense ID: %w", err)
	}

	var matches []string
	for _, e := range expenses {
		if e.ID == idOrPrefix {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, idOrPrefix) {
			matches = append(matches, e.ID)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no expense matches %q", idOrPrefix)
	default:
		return "", fmt.Errorf("%q matches %d expenses, use more characters", idOrPrefix, len(matches))
	}
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
