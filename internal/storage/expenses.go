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

const expenseColumns = `id, date, amount, category, merchant, payment_method, note, confidence, source, created_at`

// SaveExpense persists a single expense record.
func (s *SQLiteStorage) SaveExpense(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}

	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		expense.ID,
		expense.Date,
		expense.Amount,
		string(expense.Category),
		expense.Merchant,
		string(expense.PaymentMethod),
		expense.Note,
		expense.Confidence,
		string(expense.Source),
		expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense %s: %w", expense.ID, err)
	}
	return nil
}

// SaveExpenses persists multiple expenses in one transaction. Rows whose IDs
// already exist are skipped, so re-importing the same file is idempotent.
func (s *SQLiteStorage) SaveExpenses(ctx context.Context, expenses []model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpenses(expenses); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO expenses (`+expenseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now()
	for i := range expenses {
		e := &expenses[i]
		createdAt := e.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		if _, err := stmt.ExecContext(ctx,
			e.ID,
			e.Date,
			e.Amount,
			string(e.Category),
			e.Merchant,
			string(e.PaymentMethod),
			e.Note,
			e.Confidence,
			string(e.Source),
			createdAt,
		); err != nil {
			return fmt.Errorf("failed to insert expense %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStorage) GetExpense(ctx context.Context, id string) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE id = ?
	`, id)

	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

// ListExpenses returns expenses most recent first. A limit of zero or less
// returns everything.
func (s *SQLiteStorage) ListExpenses(ctx context.Context, limit int) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		ORDER BY date DESC, created_at DESC, id
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return s.queryExpenses(ctx, query, args...)
}

// GetExpensesByCategory returns all expenses in a category, most recent first.
func (s *SQLiteStorage) GetExpensesByCategory(ctx context.Context, category model.Category) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}

	return s.queryExpenses(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE category = ?
		ORDER BY date DESC, created_at DESC, id
	`, string(category))
}

// GetExpensesByDateRange returns expenses with dates in [start, end],
// oldest first.
func (s *SQLiteStorage) GetExpensesByDateRange(ctx context.Context, start, end time.Time) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %v is before start date %v", ErrInvalidDateRange, end, start)
	}

	return s.queryExpenses(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, created_at ASC, id
	`, start, end)
}

// UpdateExpenseCategory assigns an expense its category and marks it fully
// confident. The assignment is a human decision, so the parse-time
// confidence no longer applies.
func (s *SQLiteStorage) UpdateExpenseCategory(ctx context.Context, id string, category model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE expenses SET category = ?, confidence = 1.0 WHERE id = ?
	`, string(category), id)
	if err != nil {
		return fmt.Errorf("failed to update expense category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("expense %s: %w", id, common.ErrNotFound)
	}
	return nil
}

// DeleteExpense removes a single expense.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM expenses WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("expense %s: %w", id, common.ErrNotFound)
	}
	return nil
}

// ResetExpenses deletes expenses and reports how many were removed. A nil
// before deletes everything; otherwise only expenses dated strictly before
// the cutoff are removed.
func (s *SQLiteStorage) ResetExpenses(ctx context.Context, before *time.Time) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var result sql.Result
	var err error
	if before != nil {
		result, err = s.db.ExecContext(ctx, `DELETE FROM expenses WHERE date < ?`, *before)
	} else {
		result, err = s.db.ExecContext(ctx, `DELETE FROM expenses`)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to reset expenses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected, nil
}

func (s *SQLiteStorage) queryExpenses(ctx context.Context, query string, args ...any) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *expense)
	}
	return expenses, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*model.Expense, error) {
	var expense model.Expense
	var category, source string
	var merchant, paymentMethod, note sql.NullString

	err := row.Scan(
		&expense.ID,
		&expense.Date,
		&expense.Amount,
		&category,
		&merchant,
		&paymentMethod,
		&note,
		&expense.Confidence,
		&source,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	expense.Category = model.Category(category)
	expense.Source = model.ExpenseSource(source)
	if merchant.Valid {
		expense.Merchant = merchant.String
	}
	if paymentMethod.Valid {
		expense.PaymentMethod = model.PaymentMethod(paymentMethod.String)
	}
	if note.Valid {
		expense.Note = note.String
	}
	return &expense, nil
}
