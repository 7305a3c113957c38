// Package mcptool exposes expense parsing and tracking as Model Context
// Protocol tools, so an AI assistant can log and query expenses through a
// kharcha instance.
package mcptool

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/server"

	"kharcha/internal/cli"
	"kharcha/internal/model"
	"kharcha/internal/service"
)

// Server wraps the MCP server with the parsing and storage dependencies
// the tool handlers need.
type Server struct {
	store     service.Store
	parser    service.ExpenseParser
	now       func() time.Time
	newID     func() string
	mcpServer *server.MCPServer
}

// New creates an MCP server exposing the expense tools and resources.
func New(store service.Store, parser service.ExpenseParser, version string) *Server {
	s := &Server{
		store:  store,
		parser: parser,
		now:    time.Now,
		newID:  uuid.NewString,
	}

	s.mcpServer = server.NewMCPServer(
		"kharcha",
		version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.registerTools()
	s.registerResources()

	return s
}

// Server returns the underlying MCP server for serving over stdio or HTTP.
func (s *Server) Server() *server.MCPServer {
	return s.mcpServer
}

// formatParsed formats a parse result as markdown.
func formatParsed(p *model.ParsedExpense) string {
	var b strings.Builder
	b.WriteString("# Parsed Expense\n\n")
	fmt.Fprintf(&b, "- **Amount**: %s\n", cli.FormatAmount(p.Amount))
	fmt.Fprintf(&b, "- **Category**: %s (%.0f%% confidence)\n", p.Category, p.Confidence*100)
	fmt.Fprintf(&b, "- **Date**: %s\n", p.Date.Format("2006-01-02"))
	if p.Merchant != "" {
		fmt.Fprintf(&b, "- **Merchant**: %s\n", p.Merchant)
	}
	if p.PaymentMethod != "" {
		fmt.Fprintf(&b, "- **Payment method**: %s\n", p.PaymentMethod)
	}
	return b.String()
}

// formatExpenses formats a list of expenses as a markdown table.
func formatExpenses(expenses []model.Expense, title string) string {
	if len(expenses) == 0 {
		return fmt.Sprintf("# %s\n\nNo expenses recorded.", title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "%d expense(s)\n\n", len(expenses))
	b.WriteString("| Date | Category | Amount | Note |\n")
	b.WriteString("|------|----------|--------|------|\n")
	for _, e := range expenses {
		note := strings.ReplaceAll(e.Note, "|", "\\|")
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			e.Date.Format("2006-01-02"), e.Category, cli.FormatAmount(e.Amount), note)
	}
	return b.String()
}

// formatSummary formats spending totals as markdown, categories ordered by
// spend.
func formatSummary(total float64, count int, byCategory map[model.Category]float64) string {
	var b strings.Builder
	b.WriteString("# Spending Summary\n\n")
	fmt.Fprintf(&b, "- **Total spent**: %s\n", cli.FormatAmount(total))
	fmt.Fprintf(&b, "- **Expenses recorded**: %d\n", count)

	if len(byCategory) == 0 {
		return b.String()
	}

	type row struct {
		category model.Category
		amount   float64
	}
	rows := make([]row, 0, len(byCategory))
	for category, amount := range byCategory {
		rows = append(rows, row{category: category, amount: amount})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].amount != rows[j].amount {
			return rows[i].amount > rows[j].amount
		}
		return rows[i].category < rows[j].category
	})

	b.WriteString("\n## By Category\n\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "- %s: %s\n", r.category, cli.FormatAmount(r.amount))
	}
	return b.String()
}
