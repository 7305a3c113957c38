package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kharcha/internal/model"
)

// scheduleSuggestion emits a debounce tick for the given sequence number.
func (m Model) scheduleSuggestion(seq int) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

// suggest runs the classifier over the current input.
func (m Model) suggest(seq int, text string) tea.Cmd {
	return func() tea.Msg {
		category, confidence := m.parser.Suggest(text)
		return suggestionMsg{
			seq:        seq,
			category:   category,
			confidence: confidence,
		}
	}
}

// save parses the entered text and persists the resulting expense.
func (m Model) save(text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		parsed, err := m.parser.Parse(text, m.now())
		if err != nil {
			return expenseSavedMsg{err: err}
		}

		expense := model.FromParsed(m.newID(), parsed)
		if err := m.store.SaveExpense(ctx, &expense); err != nil {
			return expenseSavedMsg{err: err}
		}

		return expenseSavedMsg{expense: expense}
	}
}

// loadTodayTotal refreshes the spend total for the current day.
func (m Model) loadTodayTotal() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		now := m.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

		total, err := m.store.GetExpenseTotal(ctx, &today, &today)
		if err != nil {
			return todayTotalMsg{err: err}
		}
		return todayTotalMsg{total: total}
	}
}
