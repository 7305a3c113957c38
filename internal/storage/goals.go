package storage

import (
	"context"
	"database/sql"
	"fmt"

	"kharcha/internal/common"
	"kharcha/internal/model"
)

// SaveGoal saves or updates a savings goal.
func (s *SQLiteStorage) SaveGoal(ctx context.Context, goal *model.SavingsGoal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGoal(goal); err != nil {
		return err
	}
	if err := validateString(goal.ID, "goal.ID"); err != nil {
		return err
	}

	var targetDate any
	if !goal.TargetDate.IsZero() {
		targetDate = goal.TargetDate
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO savings_goals (id, name, target, saved, target_date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			target = excluded.target,
			saved = excluded.saved,
			target_date = excluded.target_date
	`, goal.ID, goal.Name, goal.Target, goal.Saved, targetDate)
	if err != nil {
		return fmt.Errorf("failed to save goal: %w", err)
	}
	return nil
}

// ListGoals returns all savings goals in insertion order.
func (s *SQLiteStorage) ListGoals(ctx context.Context) ([]model.SavingsGoal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, target, saved, target_date
		FROM savings_goals
		ORDER BY created_at, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []model.SavingsGoal
	for rows.Next() {
		var goal model.SavingsGoal
		var targetDate sql.NullTime
		if err := rows.Scan(
			&goal.ID,
			&goal.Name,
			&goal.Target,
			&goal.Saved,
			&targetDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		if targetDate.Valid {
			goal.TargetDate = targetDate.Time
		}
		goals = append(goals, goal)
	}

	return goals, rows.Err()
}

// AddToGoal records a contribution toward a goal.
func (s *SQLiteStorage) AddToGoal(ctx context.Context, id string, amount float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("%w: contribution must be positive, got %.2f", ErrInvalidGoal, amount)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE savings_goals SET saved = saved + ? WHERE id = ?
	`, amount, id)
	if err != nil {
		return fmt.Errorf("failed to add to goal: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("goal %s: %w", id, common.ErrNotFound)
	}
	return nil
}

// DeleteGoal removes a savings goal.
func (s *SQLiteStorage) DeleteGoal(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM savings_goals WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("goal %s: %w", id, common.ErrNotFound)
	}
	return nil
}
