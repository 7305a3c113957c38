package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"kharcha/internal/common"
	"kharcha/internal/model"
)

// SaveBudget saves or replaces the single budget row.
func (s *SQLiteStorage) SaveBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudget(budget); err != nil {
		return err
	}

	if budget.UpdatedAt.IsZero() {
		budget.UpdatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (id, monthly_income, savings_percent, recommended_savings, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			monthly_income = excluded.monthly_income,
			savings_percent = excluded.savings_percent,
			recommended_savings = excluded.recommended_savings,
			updated_at = excluded.updated_at
	`, budget.MonthlyIncome, budget.SavingsPercent, budget.RecommendedSavings, budget.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save budget: %w", err)
	}
	return nil
}

// GetBudget retrieves the budget, or common.ErrNotFound when none was set.
func (s *SQLiteStorage) GetBudget(ctx context.Context) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var budget model.Budget
	err := s.db.QueryRowContext(ctx, `
		SELECT monthly_income, savings_percent, recommended_savings, updated_at
		FROM budgets
		WHERE id = 1
	`).Scan(
		&budget.MonthlyIncome,
		&budget.SavingsPercent,
		&budget.RecommendedSavings,
		&budget.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("budget: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return &budget, nil
}
