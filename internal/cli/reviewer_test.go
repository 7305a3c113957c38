package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kharcha/internal/model"
)

func reviewableExpense() model.Expense {
	return model.Expense{
		ID:         "exp-1",
		Date:       time.Date(2025, 12, 18, 0, 0, 0, 0, time.UTC),
		Amount:     1200,
		Category:   model.CategoryDining,
		Merchant:   "Swiggy",
		Note:       "swiggy dinner with friends",
		Confidence: 0.95,
		Source:     model.SourceText,
	}
}

func TestReviewExpense_Accept(t *testing.T) {
	input := strings.NewReader("a\n")
	var output bytes.Buffer
	reviewer := NewReviewer(input, &output)

	decision, err := reviewer.ReviewExpense(context.Background(), reviewableExpense())
	require.NoError(t, err)

	assert.Equal(t, model.CategoryDining, decision.Category)
	assert.False(t, decision.Corrected)
	assert.False(t, decision.Skipped)

	out := output.String()
	assert.Contains(t, out, "Review Expense")
	assert.Contains(t, out, "swiggy dinner with friends")
	assert.Contains(t, out, "₹1,200.00")
	assert.Contains(t, out, "2025-12-18")
	assert.Contains(t, out, "Swiggy")
	assert.Contains(t, out, "[A] Accept category")
}

func TestReviewExpense_Correct(t *testing.T) {
	// Option 3 in canonical order is Transport.
	input := strings.NewReader("c\n3\n")
	var output bytes.Buffer
	reviewer := NewReviewer(input, &output)

	decision, err := reviewer.ReviewExpense(context.Background(), reviewableExpense())
	require.NoError(t, err)

	assert.Equal(t, model.CategoryTransport, decision.Category)
	assert.True(t, decision.Corrected)
	assert.False(t, decision.Skipped)

	out := output.String()
	assert.Contains(t, out, "[ 1] Groceries")
	assert.Contains(t, out, "[ 3] Transport")
	assert.Contains(t, out, "[12] Other")
}

func TestReviewExpense_CorrectToSameCategory(t *testing.T) {
	// Option 2 is Dining, the category the expense already carries.
	input := strings.NewReader("c\n2\n")
	var output bytes.Buffer
	reviewer := NewReviewer(input, &output)

	decision, err := reviewer.ReviewExpense(context.Background(), reviewableExpense())
	require.NoError(t, err)

	assert.Equal(t, model.CategoryDining, decision.Category)
	assert.False(t, decision.Corrected)
}

func TestReviewExpense_Skip(t *testing.T) {
	input := strings.NewReader("s\n")
	var output bytes.Buffer
	reviewer := NewReviewer(input, &output)

	decision, err := reviewer.ReviewExpense(context.Background(), reviewableExpense())
	require.NoError(t, err)

	assert.True(t, decision.Skipped)
	assert.False(t, decision.Corrected)
}

func TestReviewExpense_InvalidChoiceRetries(t *testing.T) {
	input := strings.NewReader("x\na\n")
	var output bytes.Buffer
	reviewer := NewReviewer(input, &output)

	decision, err := reviewer.ReviewExpense(context.Background(), reviewableExpense())
	require.NoError(t, err)

	assert.Equal(t, model.CategoryDining, decision.Category)
	assert.Contains(t, output.String(), "Invalid choice. Please try again.")
}

func TestReviewExpense_BadCategoryNumberRetries(t *testing.T) {
	input := strings.NewReader("c\n0\n99\nabc\n1\n")
	var output bytes.Buffer
	reviewer := NewReviewer(input, &output)

	decision, err := reviewer.ReviewExpense(context.Background(), reviewableExpense())
	require.NoError(t, err)

	assert.Equal(t, model.CategoryGroceries, decision.Category)
	assert.True(t, decision.Corrected)
	assert.Contains(t, output.String(), "Enter a number between 1 and 12.")
}

func TestReviewExpense_InputTerminated(t *testing.T) {
	input := strings.NewReader("")
	var output bytes.Buffer
	reviewer := NewReviewer(input, &output)

	_, err := reviewer.ReviewExpense(context.Background(), reviewableExpense())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input terminated")
}

func TestReviewExpense_ContextCancelled(t *testing.T) {
	input := strings.NewReader("a\n")
	var output bytes.Buffer
	reviewer := NewReviewer(input, &output)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := reviewer.ReviewExpense(ctx, reviewableExpense())
	assert.Equal(t, ErrInputCancelled, err)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "yes short", input: "y\n", expected: true},
		{name: "yes long", input: "yes\n", expected: true},
		{name: "yes uppercase", input: "Y\n", expected: true},
		{name: "no", input: "n\n", expected: false},
		{name: "empty defaults to no", input: "\n", expected: false},
		{name: "anything else is no", input: "sure\n", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := strings.NewReader(tt.input)
			var output bytes.Buffer
			reviewer := NewReviewer(input, &output)

			ok, err := reviewer.Confirm(context.Background(), "Delete everything?")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
			assert.Contains(t, output.String(), "Delete everything? [y/N]")
		})
	}
}

func TestConfirm_InputTerminated(t *testing.T) {
	input := strings.NewReader("")
	var output bytes.Buffer
	reviewer := NewReviewer(input, &output)

	_, err := reviewer.Confirm(context.Background(), "Delete everything?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input terminated")
}
