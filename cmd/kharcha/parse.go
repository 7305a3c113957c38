package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"kharcha/internal/cli"
	"kharcha/internal/common"
	"kharcha/internal/model"
)

func parseCmd() *cobra.Command {
	var (
		dateFlag string
		logFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "parse <text>",
		Short: "Parse a natural-language expense",
		Long: `Parse a sentence like "spent 450 on groceries at dmart yesterday" and
show the extracted amount, category, merchant, date and payment method.

Relative phrases (yesterday, last friday, 2 days ago) resolve against
today unless --date supplies a different reference day.

Examples:
  kharcha parse "spent ₹1200 on swiggy dinner via gpay"
  kharcha parse "auto to office 80" --log
  kharcha parse "movie yesterday 400" --date 2025-12-19`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			text := strings.Join(args, " ")

			ref := time.Now()
			if dateFlag != "" {
				parsed, err := time.Parse("2006-01-02", dateFlag)
				if err != nil {
					return fmt.Errorf("invalid --date %q (want YYYY-MM-DD)", dateFlag)
				}
				ref = parsed
			}

			p, _, err := initParser()
			if err != nil {
				return err
			}

			parsed, err := p.Parse(text, ref)
			if err != nil {
				if errors.Is(err, common.ErrAmountNotFound) {
					return fmt.Errorf("could not find an amount in %q; try: spent [amount] on [category]", text)
				}
				return fmt.Errorf("failed to parse expense: %w", err)
			}

			fmt.Println(renderParsed(parsed))

			if !logFlag {
				return nil
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			expense := model.FromParsed(uuid.NewString(), parsed)
			if err := store.SaveExpense(ctx, &expense); err != nil {
				return fmt.Errorf("failed to save expense: %w", err)
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded expense %s", expense.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Reference date for relative phrases (format: 2006-01-02, default today)")
	cmd.Flags().BoolVar(&logFlag, "log", false, "Record the parsed expense")

	return cmd
}

// renderParsed builds the styled box shown after a successful parse.
func renderParsed(p *model.ParsedExpense) string {
	fields := [][2]string{
		{"Amount", cli.FormatAmount(p.Amount)},
		{"Category", fmt.Sprintf("%s %s", p.Category, cli.FormatConfidence(p.Confidence))},
		{"Date", p.Date.Format("2006-01-02")},
	}
	if p.Merchant != "" {
		fields = append(fields, [2]string{"Merchant", p.Merchant})
	}
	if p.PaymentMethod != "" {
		fields = append(fields, [2]string{"Payment", string(p.PaymentMethod)})
	}
	return cli.RenderBox("Parsed Expense", cli.RenderFields(fields))
}
