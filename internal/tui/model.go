// Package tui implements the quick-capture terminal interface: type an
// expense sentence, watch the live category suggestion, press enter to
// save it.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"kharcha/internal/model"
	"kharcha/internal/service"
)

// debounceDelay is how long typing must pause before a suggestion runs.
const debounceDelay = 200 * time.Millisecond

// maxVisibleEntries caps the session capture list shown under the input.
const maxVisibleEntries = 8

// Model holds the capture screen state.
type Model struct {
	store   service.Store
	parser  service.ExpenseParser
	now     func() time.Time
	newID   func() string
	input   textinput.Model
	entries []model.Expense

	suggestedCategory   model.Category
	suggestedConfidence float64
	hasSuggestion       bool

	statusLine string
	lastError  error

	todayTotal   float64
	sessionTotal float64

	seq    int
	width  int
	height int

	saving   bool
	quitting bool
}

// newModel creates the capture model with its dependencies.
func newModel(store service.Store, parser service.ExpenseParser) Model {
	input := textinput.New()
	input.Placeholder = "spent 450 on groceries at dmart yesterday..."
	input.CharLimit = 200
	input.Focus()

	return Model{
		store:  store,
		parser: parser,
		now:    time.Now,
		newID:  uuid.NewString,
		input:  input,
	}
}

// Init starts the cursor blink and loads today's spend total.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadTodayTotal())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if msg.Width > 8 {
			m.input.Width = msg.Width - 8
		}
		return m, nil

	case debounceMsg:
		// Only the newest scheduled tick may trigger a suggestion.
		if msg.seq != m.seq {
			return m, nil
		}
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			m.hasSuggestion = false
			return m, nil
		}
		return m, m.suggest(msg.seq, text)

	case suggestionMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.suggestedCategory = msg.category
		m.suggestedConfidence = msg.confidence
		m.hasSuggestion = true
		return m, nil

	case expenseSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.lastError = msg.err
			m.statusLine = ""
			return m, nil
		}
		m.lastError = nil
		m.entries = append([]model.Expense{msg.expense}, m.entries...)
		m.sessionTotal += msg.expense.Amount
		m.statusLine = "Saved " + string(msg.expense.Category)
		m.input.SetValue("")
		m.hasSuggestion = false
		m.seq++
		return m, m.loadTodayTotal()

	case todayTotalMsg:
		if msg.err == nil {
			m.todayTotal = msg.total
		}
		return m, nil
	}

	return m, nil
}

// handleKey routes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "enter":
		if m.saving {
			return m, nil
		}
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.saving = true
		m.lastError = nil
		m.statusLine = "Saving..."
		return m, m.save(text)

	case "ctrl+l":
		return m, tea.ClearScreen
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before {
		m.seq++
		m.statusLine = ""
		m.lastError = nil
		if strings.TrimSpace(m.input.Value()) == "" {
			m.hasSuggestion = false
		} else {
			return m, tea.Batch(cmd, m.scheduleSuggestion(m.seq))
		}
	}
	return m, cmd
}
