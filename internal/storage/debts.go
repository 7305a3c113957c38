package storage

import (
	"context"
	"fmt"

	"kharcha/internal/common"
	"kharcha/internal/model"
)

// SaveDebt saves or updates a debt.
func (s *SQLiteStorage) SaveDebt(ctx context.Context, debt *model.Debt) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDebt(debt); err != nil {
		return err
	}
	if err := validateString(debt.ID, "debt.ID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO debts (id, name, balance, interest_rate, min_payment)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			balance = excluded.balance,
			interest_rate = excluded.interest_rate,
			min_payment = excluded.min_payment
	`, debt.ID, debt.Name, debt.Balance, debt.InterestRate, debt.MinPayment)
	if err != nil {
		return fmt.Errorf("failed to save debt: %w", err)
	}
	return nil
}

// ListDebts returns all debts in insertion order.
func (s *SQLiteStorage) ListDebts(ctx context.Context) ([]model.Debt, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, balance, interest_rate, min_payment
		FROM debts
		ORDER BY created_at, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var debts []model.Debt
	for rows.Next() {
		var debt model.Debt
		if err := rows.Scan(
			&debt.ID,
			&debt.Name,
			&debt.Balance,
			&debt.InterestRate,
			&debt.MinPayment,
		); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, debt)
	}

	return debts, rows.Err()
}

// DeleteDebt removes a debt.
func (s *SQLiteStorage) DeleteDebt(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM debts WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("debt %s: %w", id, common.ErrNotFound)
	}
	return nil
}
