package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kharcha/internal/classifier"
	"kharcha/internal/cli"
	"kharcha/internal/config"
	"kharcha/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the expense categories",
		Long: `List the fixed set of categories every expense is classified into, with
the number of keyword fallback rules covering each. The set is closed, so
trained models, keyword rules and merchant overrides all agree on labels.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.LoadParserSettings()
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Categories"))
			fmt.Println(cli.RenderTable(
				[]string{"Category", "Keyword rules"},
				categoryRows(settings.Classifier.Rules),
			))
			return nil
		},
	}

	return cmd
}

// categoryRows pairs each category with its keyword rule count, in the
// canonical category order.
func categoryRows(rules []classifier.KeywordRule) [][]string {
	counts := make(map[model.Category]int, len(rules))
	for _, r := range rules {
		counts[r.Category]++
	}

	rows := make([][]string, 0, len(model.AllCategories()))
	for _, cat := range model.AllCategories() {
		rows = append(rows, []string{string(cat), fmt.Sprintf("%d", counts[cat])})
	}
	return rows
}
