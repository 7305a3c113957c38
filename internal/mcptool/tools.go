package mcptool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"kharcha/internal/cli"
	"kharcha/internal/common"
	"kharcha/internal/model"
)

// registerTools registers the expense tools.
func (s *Server) registerTools() {
	parseTool := mcp.NewTool("parse_expense",
		mcp.WithDescription("Parse a natural-language expense sentence without saving it. Returns the extracted amount, category, merchant, date and payment method."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The expense sentence, e.g. 'spent 450 on groceries at dmart yesterday'"),
		),
	)
	s.mcpServer.AddTool(parseTool, s.handleParseExpense)

	logTool := mcp.NewTool("log_expense",
		mcp.WithDescription("Parse a natural-language expense sentence and record it."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The expense sentence to record"),
		),
	)
	s.mcpServer.AddTool(logTool, s.handleLogExpense)

	suggestTool := mcp.NewTool("suggest_category",
		mcp.WithDescription("Suggest an expense category for a description."),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("The expense description to categorize"),
		),
	)
	s.mcpServer.AddTool(suggestTool, s.handleSuggestCategory)

	listTool := mcp.NewTool("list_expenses",
		mcp.WithDescription("List the most recent recorded expenses."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of expenses to return (default 20)"),
		),
	)
	s.mcpServer.AddTool(listTool, s.handleListExpenses)

	summaryTool := mcp.NewTool("expense_summary",
		mcp.WithDescription("Summarize spending, overall and per category, optionally within a date range."),
		mcp.WithString("from",
			mcp.Description("Start date (YYYY-MM-DD), inclusive"),
		),
		mcp.WithString("to",
			mcp.Description("End date (YYYY-MM-DD), inclusive"),
		),
	)
	s.mcpServer.AddTool(summaryTool, s.handleExpenseSummary)
}

func (s *Server) handleParseExpense(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := request.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("text parameter required"), nil
	}

	parsed, err := s.parser.Parse(text, s.now())
	if err != nil {
		if errors.Is(err, common.ErrAmountNotFound) {
			return mcp.NewToolResultError("Could not understand. Try: 'spent [amount] on [category]'"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse expense: %v", err)), nil
	}

	return mcp.NewToolResultText(formatParsed(parsed)), nil
}

func (s *Server) handleLogExpense(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := request.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("text parameter required"), nil
	}

	parsed, err := s.parser.Parse(text, s.now())
	if err != nil {
		if errors.Is(err, common.ErrAmountNotFound) {
			return mcp.NewToolResultError("Could not understand. Try: 'spent [amount] on [category]'"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse expense: %v", err)), nil
	}

	expense := model.FromParsed(s.newID(), parsed)
	if err := s.store.SaveExpense(ctx, &expense); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save expense: %v", err)), nil
	}

	result := fmt.Sprintf("Logged %s under %s on %s (%.0f%% confidence).",
		cli.FormatAmount(expense.Amount), expense.Category,
		expense.Date.Format("2006-01-02"), expense.Confidence*100)
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleSuggestCategory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	description := request.GetString("description", "")
	if description == "" {
		return mcp.NewToolResultError("description parameter required"), nil
	}

	category, confidence := s.parser.Suggest(description)
	result := fmt.Sprintf("%.0f%% confident this is %s", confidence*100, category)
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleListExpenses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := int(request.GetFloat("limit", 20))
	if limit <= 0 {
		return mcp.NewToolResultError("limit must be positive"), nil
	}

	expenses, err := s.store.ListExpenses(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list expenses: %v", err)), nil
	}

	return mcp.NewToolResultText(formatExpenses(expenses, "Recent Expenses")), nil
}

func (s *Server) handleExpenseSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	from, err := dateArg(request, "from")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := dateArg(request, "to")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	total, err := s.store.GetExpenseTotal(ctx, from, to)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to total expenses: %v", err)), nil
	}
	byCategory, err := s.store.GetCategorySummary(ctx, from, to)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to summarize categories: %v", err)), nil
	}
	count, err := s.store.GetExpenseCount(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to count expenses: %v", err)), nil
	}

	return mcp.NewToolResultText(formatSummary(total, count, byCategory)), nil
}

// dateArg reads an optional YYYY-MM-DD argument.
func dateArg(request mcp.CallToolRequest, key string) (*time.Time, error) {
	raw := request.GetString(key, "")
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s, want YYYY-MM-DD", key)
	}
	return &t, nil
}
