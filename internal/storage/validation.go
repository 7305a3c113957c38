// Package storage provides the SQLite persistence layer for expenses,
// budgets, debts, savings goals, and classifier feedback.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kharcha/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrEmptySlice       = errors.New("slice cannot be empty")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidCategory  = errors.New("unknown category")
	ErrInvalidExpense   = errors.New("invalid expense")
	ErrInvalidBudget    = errors.New("invalid budget")
	ErrInvalidDebt      = errors.New("invalid debt")
	ErrInvalidGoal      = errors.New("invalid savings goal")
	ErrInvalidExample   = errors.New("invalid training example")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateCategory ensures a category is a member of the closed set.
func validateCategory(category model.Category) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return nil
}

// validateExpense validates a single expense.
func validateExpense(expense *model.Expense) error {
	if expense == nil {
		return fmt.Errorf("%w: expense", ErrNilParameter)
	}
	if err := expense.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidExpense, err)
	}
	return nil
}

// validateExpenses validates a slice of expenses.
func validateExpenses(expenses []model.Expense) error {
	if expenses == nil {
		return fmt.Errorf("%w: expenses", ErrNilParameter)
	}
	if len(expenses) == 0 {
		return fmt.Errorf("%w: expenses", ErrEmptySlice)
	}
	for i := range expenses {
		if err := validateExpense(&expenses[i]); err != nil {
			return fmt.Errorf("expense at index %d: %w", i, err)
		}
	}
	return nil
}

// validateBudget validates a budget.
func validateBudget(budget *model.Budget) error {
	if budget == nil {
		return fmt.Errorf("%w: budget", ErrNilParameter)
	}
	if err := budget.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBudget, err)
	}
	return nil
}

// validateDebt validates a debt.
func validateDebt(debt *model.Debt) error {
	if debt == nil {
		return fmt.Errorf("%w: debt", ErrNilParameter)
	}
	if err := debt.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDebt, err)
	}
	return nil
}

// validateGoal validates a savings goal.
func validateGoal(goal *model.SavingsGoal) error {
	if goal == nil {
		return fmt.Errorf("%w: goal", ErrNilParameter)
	}
	if err := goal.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGoal, err)
	}
	return nil
}

// validateExample validates a training example.
func validateExample(example model.TrainingExample) error {
	if err := example.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidExample, err)
	}
	return nil
}

// validateDateRange ensures optional range bounds are ordered.
func validateDateRange(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return fmt.Errorf("%w: %v is after %v", ErrInvalidDateRange, from, to)
	}
	return nil
}
