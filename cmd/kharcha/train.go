package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"kharcha/internal/classifier"
	"kharcha/internal/cli"
	"kharcha/internal/config"
	"kharcha/internal/corpus"
)

func trainCmd() *cobra.Command {
	var (
		corpusFile      string
		outputPath      string
		holdout         float64
		skipCorrections bool
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the category classifier",
		Long: `Train the naive Bayes category model and save it as a JSON artifact.

Training uses the built-in labelled corpus unless --corpus points at a
CSV file of text,category rows. Corrections recorded by 'kharcha review'
are merged in by default. A holdout slice of the corpus is kept aside to
report accuracy on examples the model never saw.

The running 'kharcha serve' picks up a new artifact on its next scheduled
reload; other commands load it on startup.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			examples := corpus.Default()
			source := "built-in corpus"
			if corpusFile != "" {
				loaded, err := corpus.LoadCSV(config.ExpandPath(corpusFile))
				if err != nil {
					return err
				}
				examples = loaded
				source = corpusFile
			}

			if !skipCorrections {
				store, err := initStorage(ctx)
				if err != nil {
					return err
				}
				corrections, err := store.ListTrainingExamples(ctx)
				closeStore(store)
				if err != nil {
					return fmt.Errorf("failed to load recorded corrections: %w", err)
				}
				if len(corrections) > 0 {
					examples = append(examples, corrections...)
					fmt.Println(cli.FormatInfo(fmt.Sprintf("Merged %d corrected examples from storage", len(corrections))))
				}
			}

			trainSet, evalSet := corpus.Split(examples, holdout)
			fmt.Println(cli.FormatInfo(fmt.Sprintf("Training on %d examples from %s (%d held out)", len(trainSet), source, len(evalSet))))

			bar := newCorpusBar(len(trainSet))
			for _, ex := range trainSet {
				if err := ex.Validate(); err != nil {
					return fmt.Errorf("invalid training example %q: %w", ex.Text, err)
				}
				if err := bar.Add(1); err != nil {
					slog.Warn("Failed to update progress bar", "error", err)
				}
			}

			m, err := classifier.Train(trainSet)
			if err != nil {
				return fmt.Errorf("training failed: %w", err)
			}

			if len(evalSet) > 0 {
				accuracy := m.Accuracy(evalSet)
				fmt.Println(cli.FormatInfo(fmt.Sprintf("Holdout accuracy: %.0f%% over %d examples", accuracy*100, len(evalSet))))
			}

			store := modelStore()
			if outputPath != "" {
				store = classifier.NewFileStore(config.ExpandPath(outputPath))
			}
			if err := store.Save(m); err != nil {
				return fmt.Errorf("failed to save model: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Model saved to %s", store.Path())))
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusFile, "corpus", "", "CSV corpus of text,category rows (default: built-in corpus)")
	cmd.Flags().StringVar(&outputPath, "output", "", "Model artifact path (default: configured model.path)")
	cmd.Flags().Float64Var(&holdout, "holdout", 0.2, "Fraction of examples held out for the accuracy report")
	cmd.Flags().BoolVar(&skipCorrections, "no-corrections", false, "Do not merge corrections recorded by 'kharcha review'")

	return cmd
}

func newCorpusBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Preparing corpus...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(os.Stderr); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
