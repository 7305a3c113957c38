package mcptool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"kharcha/internal/cli"
	"kharcha/internal/common"
)

// registerResources registers read-only views over the expense data.
func (s *Server) registerResources() {
	summaryResource := mcp.NewResource("kharcha://summary",
		"Spending summary",
		mcp.WithMIMEType("text/markdown"),
		mcp.WithResourceDescription("All-time spending totals, overall and per category"),
	)
	s.mcpServer.AddResource(summaryResource, s.handleSummaryResource)

	budgetResource := mcp.NewResource("kharcha://budget",
		"Budget status",
		mcp.WithMIMEType("text/markdown"),
		mcp.WithResourceDescription("Monthly budget with current spending and leftover"),
	)
	s.mcpServer.AddResource(budgetResource, s.handleBudgetResource)
}

func (s *Server) handleSummaryResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	total, err := s.store.GetExpenseTotal(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.store.GetCategorySummary(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	count, err := s.store.GetExpenseCount(ctx)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "kharcha://summary",
			MIMEType: "text/markdown",
			Text:     formatSummary(total, count, byCategory),
		},
	}, nil
}

func (s *Server) handleBudgetResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	text, err := s.budgetStatus(ctx)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "kharcha://budget",
			MIMEType: "text/markdown",
			Text:     text,
		},
	}, nil
}

// budgetStatus renders the budget with live expense totals, matching what
// the HTTP API reports.
func (s *Server) budgetStatus(ctx context.Context) (string, error) {
	budget, err := s.store.GetBudget(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "# Budget\n\nNo budget set.", nil
		}
		return "", err
	}

	total, err := s.store.GetExpenseTotal(ctx, nil, nil)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("# Budget\n\n")
	fmt.Fprintf(&b, "- **Monthly income**: %s\n", cli.FormatAmount(budget.MonthlyIncome))
	fmt.Fprintf(&b, "- **Savings target**: %.0f%% (%s)\n", budget.SavingsPercent, cli.FormatAmount(budget.RecommendedSavings))
	fmt.Fprintf(&b, "- **Spent so far**: %s\n", cli.FormatAmount(total))
	fmt.Fprintf(&b, "- **Leftover**: %s\n", cli.FormatAmount(budget.Leftover(total)))
	return b.String(), nil
}
