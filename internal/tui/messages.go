package tui

import (
	"kharcha/internal/model"
)

// debounceMsg fires after a typing pause. The sequence number identifies
// which keystroke scheduled it; stale ticks are ignored.
type debounceMsg struct {
	seq int
}

// suggestionMsg carries a live category suggestion for the current input.
type suggestionMsg struct {
	category   model.Category
	confidence float64
	seq        int
}

// expenseSavedMsg is the result of parsing and persisting the entered text.
type expenseSavedMsg struct {
	err     error
	expense model.Expense
}

// todayTotalMsg carries the refreshed spend total for the current day.
type todayTotalMsg struct {
	err   error
	total float64
}
