// Package service defines the interfaces the application surfaces depend on,
// keeping the HTTP server, CLI, TUI, and MCP tools decoupled from the
// concrete SQLite implementation.
package service

import (
	"context"
	"time"

	"kharcha/internal/model"
)

// Store defines the contract for the persistence layer.
type Store interface {
	// Expense operations
	SaveExpense(ctx context.Context, expense *model.Expense) error
	SaveExpenses(ctx context.Context, expenses []model.Expense) error
	GetExpense(ctx context.Context, id string) (*model.Expense, error)
	ListExpenses(ctx context.Context, limit int) ([]model.Expense, error)
	GetExpensesByCategory(ctx context.Context, category model.Category) ([]model.Expense, error)
	GetExpensesByDateRange(ctx context.Context, start, end time.Time) ([]model.Expense, error)
	UpdateExpenseCategory(ctx context.Context, id string, category model.Category) error
	DeleteExpense(ctx context.Context, id string) error
	ResetExpenses(ctx context.Context, before *time.Time) (int64, error)

	// Summary queries
	GetCategorySummary(ctx context.Context, from, to *time.Time) (map[model.Category]float64, error)
	GetMerchantSummary(ctx context.Context, from, to *time.Time) (map[string]float64, error)
	GetExpenseTotal(ctx context.Context, from, to *time.Time) (float64, error)
	GetExpenseCount(ctx context.Context) (int, error)

	// Budget operations
	SaveBudget(ctx context.Context, budget *model.Budget) error
	GetBudget(ctx context.Context) (*model.Budget, error)

	// Debt operations
	SaveDebt(ctx context.Context, debt *model.Debt) error
	ListDebts(ctx context.Context) ([]model.Debt, error)
	DeleteDebt(ctx context.Context, id string) error

	// Savings goal operations
	SaveGoal(ctx context.Context, goal *model.SavingsGoal) error
	ListGoals(ctx context.Context) ([]model.SavingsGoal, error)
	AddToGoal(ctx context.Context, id string, amount float64) error
	DeleteGoal(ctx context.Context, id string) error

	// Classifier feedback
	SaveTrainingExample(ctx context.Context, example model.TrainingExample) error
	ListTrainingExamples(ctx context.Context) ([]model.TrainingExample, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// ExpenseParser is the parsing surface the server, TUI, and MCP tools
// consume.
type ExpenseParser interface {
	Parse(text string, ref time.Time) (*model.ParsedExpense, error)
	Suggest(text string) (model.Category, float64)
	Ready() bool
}
