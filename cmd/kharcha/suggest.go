package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"kharcha/internal/cli"
)

func suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <text>",
		Short: "Suggest a category for a description",
		Long: `Suggest an expense category for a partial description, without needing
an amount. Useful for checking what the classifier would do with a note
before recording it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			text := strings.Join(args, " ")

			p, _, err := initParser()
			if err != nil {
				return err
			}

			category, confidence := p.Suggest(text)
			fmt.Printf("%s %s\n", cli.BoldStyle.Render(string(category)), cli.FormatConfidence(confidence))
			if !p.Ready() {
				fmt.Println(cli.SubtleStyle.Render("keyword fallback; run 'kharcha train' to enable model predictions"))
			}
			return nil
		},
	}
}
