package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kharcha/internal/cli"
	"kharcha/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cli.PrimaryColor)

	totalStyle = lipgloss.NewStyle().
			Bold(true)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cli.PrimaryColor).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().
			Foreground(cli.SubtleColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(cli.SuccessColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(cli.ErrorColor)

	entryNoteStyle = lipgloss.NewStyle().
			Foreground(cli.SubtleColor)
)

// View renders the capture screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		"",
		inputBoxStyle.Render(m.input.View()),
		m.renderSuggestion(),
		m.renderStatus(),
	}

	if entries := m.renderEntries(); entries != "" {
		sections = append(sections, "", entries)
	}

	sections = append(sections, "", hintStyle.Render("[enter] save   [esc] quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader shows the title and today's running total.
func (m Model) renderHeader() string {
	title := titleStyle.Render("💰 kharcha quick capture")
	total := totalStyle.Render("Today: " + cli.FormatAmount(m.todayTotal))

	if m.width <= lipgloss.Width(title)+lipgloss.Width(total)+2 {
		return title + "  " + total
	}

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(total)
	return title + strings.Repeat(" ", gap) + total
}

// renderSuggestion shows the live category prediction with a confidence bar.
func (m Model) renderSuggestion() string {
	if !m.hasSuggestion {
		return hintStyle.Render("Type an expense to see a category suggestion")
	}

	bar := renderConfidenceBar(m.suggestedConfidence)
	return fmt.Sprintf("%s %s %s",
		string(m.suggestedCategory),
		bar,
		cli.FormatConfidence(m.suggestedConfidence),
	)
}

// renderConfidenceBar renders a visual confidence indicator.
func renderConfidenceBar(confidence float64) string {
	width := 12
	filled := int(float64(width) * confidence)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	var style lipgloss.Style
	switch {
	case confidence >= 0.9:
		style = lipgloss.NewStyle().Foreground(cli.SuccessColor)
	case confidence >= 0.6:
		style = lipgloss.NewStyle().Foreground(cli.WarningColor)
	default:
		style = lipgloss.NewStyle().Foreground(cli.ErrorColor)
	}
	return style.Render(bar)
}

// renderStatus shows the transient save status or the last error.
func (m Model) renderStatus() string {
	if m.lastError != nil {
		return errorStyle.Render("✗ " + m.lastError.Error())
	}
	if m.statusLine != "" {
		return statusStyle.Render("✓ " + m.statusLine)
	}
	return ""
}

// renderEntries lists this session's captures, newest first.
func (m Model) renderEntries() string {
	if len(m.entries) == 0 {
		return ""
	}

	shown := m.entries
	if len(shown) > maxVisibleEntries {
		shown = shown[:maxVisibleEntries]
	}

	lines := make([]string, 0, len(shown)+1)
	lines = append(lines, hintStyle.Render(fmt.Sprintf(
		"Captured this session (%d, %s):", len(m.entries), cli.FormatAmount(m.sessionTotal))))

	for _, e := range shown {
		lines = append(lines, formatEntry(e))
	}
	return strings.Join(lines, "\n")
}

// formatEntry renders one captured expense row.
func formatEntry(e model.Expense) string {
	note := e.Note
	if runes := []rune(note); len(runes) > 40 {
		note = string(runes[:37]) + "..."
	}
	return fmt.Sprintf("  %s  %-13s %12s  %s",
		e.Date.Format("Jan 02"),
		string(e.Category),
		cli.FormatAmount(e.Amount),
		entryNoteStyle.Render(note),
	)
}
