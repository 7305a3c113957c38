package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"kharcha/internal/model"
)

// ReviewDecision is the outcome of reviewing a single expense.
type ReviewDecision struct {
	// Category is the category the expense should carry. Meaningless
	// when Skipped is set.
	Category model.Category
	// Corrected reports whether the reviewer picked a different
	// category than the parser did.
	Corrected bool
	// Skipped reports that the reviewer left the expense untouched.
	Skipped bool
}

// Reviewer walks a user through parsed expenses so miscategorized ones
// can be corrected and fed back into training.
type Reviewer struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewReviewer creates a reviewer reading from input and writing to output.
// Nil arguments default to stdin and stdout.
func NewReviewer(input io.Reader, output io.Writer) *Reviewer {
	if input == nil {
		input = os.Stdin
	}
	if output == nil {
		output = os.Stdout
	}
	return &Reviewer{
		reader: NewNonBlockingReader(input),
		writer: output,
	}
}

// ReviewExpense shows one expense and asks the user to accept its
// category, correct it, or skip it.
func (rv *Reviewer) ReviewExpense(ctx context.Context, expense model.Expense) (ReviewDecision, error) {
	fields := [][2]string{
		{"Note:", expense.Note},
		{"Amount:", FormatAmount(expense.Amount)},
		{"Date:", expense.Date.Format("2006-01-02")},
		{"Category:", fmt.Sprintf("%s (%s)", expense.Category, FormatConfidence(expense.Confidence))},
	}
	if expense.Merchant != "" {
		fields = append(fields, [2]string{"Merchant:", expense.Merchant})
	}

	if _, err := fmt.Fprintln(rv.writer, RenderBox("Review Expense", RenderFields(fields))); err != nil {
		return ReviewDecision{}, fmt.Errorf("failed to write expense box: %w", err)
	}
	if _, err := fmt.Fprintln(rv.writer, "  [A] Accept category"); err != nil {
		return ReviewDecision{}, fmt.Errorf("failed to write accept option: %w", err)
	}
	if _, err := fmt.Fprintln(rv.writer, "  [C] Correct category"); err != nil {
		return ReviewDecision{}, fmt.Errorf("failed to write correct option: %w", err)
	}
	if _, err := fmt.Fprintln(rv.writer, "  [S] Skip this expense"); err != nil {
		return ReviewDecision{}, fmt.Errorf("failed to write skip option: %w", err)
	}
	if _, err := fmt.Fprintln(rv.writer); err != nil {
		return ReviewDecision{}, fmt.Errorf("failed to write newline: %w", err)
	}

	choice, err := rv.promptChoice(ctx, "Choice [A/C/S]", []string{"a", "c", "s"})
	if err != nil {
		return ReviewDecision{}, err
	}

	switch choice {
	case "a":
		return ReviewDecision{Category: expense.Category}, nil
	case "c":
		category, err := rv.promptCategory(ctx)
		if err != nil {
			return ReviewDecision{}, err
		}
		return ReviewDecision{
			Category:  category,
			Corrected: category != expense.Category,
		}, nil
	default:
		return ReviewDecision{Skipped: true}, nil
	}
}

// Confirm asks a yes/no question, defaulting to no.
func (rv *Reviewer) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := fmt.Fprint(rv.writer, FormatPrompt(question+" [y/N]")); err != nil {
		return false, fmt.Errorf("failed to write confirm prompt: %w", err)
	}

	input, err := rv.reader.ReadLine(ctx)
	if err != nil {
		if err == io.EOF {
			return false, fmt.Errorf("input terminated")
		}
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(input))
	return answer == "y" || answer == "yes", nil
}

func (rv *Reviewer) promptChoice(ctx context.Context, prompt string, validChoices []string) (string, error) {
	for {
		if _, err := fmt.Fprint(rv.writer, FormatPrompt(prompt)); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}

		input, err := rv.reader.ReadLine(ctx)
		if err != nil {
			if err == io.EOF {
				return "", fmt.Errorf("input terminated")
			}
			return "", err
		}

		choice := strings.ToLower(strings.TrimSpace(input))
		for _, valid := range validChoices {
			if choice == valid {
				return choice, nil
			}
		}

		if _, err := fmt.Fprintln(rv.writer, FormatError("Invalid choice. Please try again.")); err != nil {
			slog.Warn("Failed to write error message", "error", err)
		}
	}
}

func (rv *Reviewer) promptCategory(ctx context.Context) (model.Category, error) {
	categories := model.AllCategories()

	if _, err := fmt.Fprintln(rv.writer); err != nil {
		return "", fmt.Errorf("failed to write newline: %w", err)
	}
	for i, category := range categories {
		if _, err := fmt.Fprintf(rv.writer, "  [%2d] %s\n", i+1, category); err != nil {
			return "", fmt.Errorf("failed to write category option: %w", err)
		}
	}

	for {
		if _, err := fmt.Fprint(rv.writer, FormatPrompt("Category number")); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}

		input, err := rv.reader.ReadLine(ctx)
		if err != nil {
			if err == io.EOF {
				return "", fmt.Errorf("input terminated")
			}
			return "", err
		}

		n, err := strconv.Atoi(strings.TrimSpace(input))
		if err == nil && n >= 1 && n <= len(categories) {
			return categories[n-1], nil
		}

		if _, err := fmt.Fprintln(rv.writer, FormatError(fmt.Sprintf("Enter a number between 1 and %d.", len(categories)))); err != nil {
			slog.Warn("Failed to write error message", "error", err)
		}
	}
}
