package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"kharcha/internal/model"
)

// dateBounds builds optional WHERE conditions for an expense date range.
// Either bound may be nil.
func dateBounds(from, to *time.Time) ([]string, []any) {
	var conds []string
	var args []any
	if from != nil {
		conds = append(conds, "date >= ?")
		args = append(args, *from)
	}
	if to != nil {
		conds = append(conds, "date <= ?")
		args = append(args, *to)
	}
	return conds, args
}

// GetCategorySummary returns total spend per category, optionally bounded by
// date.
func (s *SQLiteStorage) GetCategorySummary(ctx context.Context, from, to *time.Time) (map[model.Category]float64, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(from, to); err != nil {
		return nil, err
	}

	query := `SELECT category, SUM(amount) as total FROM expenses`
	conds, args := dateBounds(from, to)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " GROUP BY category ORDER BY total DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query category summary: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summary := make(map[model.Category]float64)
	for rows.Next() {
		var category string
		var total float64
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("failed to scan category summary: %w", err)
		}
		summary[model.Category(category)] = total
	}

	return summary, rows.Err()
}

// GetMerchantSummary returns total spend per recognized merchant, optionally
// bounded by date. Expenses without a merchant are excluded.
func (s *SQLiteStorage) GetMerchantSummary(ctx context.Context, from, to *time.Time) (map[string]float64, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(from, to); err != nil {
		return nil, err
	}

	query := `SELECT merchant, SUM(amount) as total FROM expenses`
	conds := []string{"merchant IS NOT NULL", "merchant != ''"}
	rangeConds, args := dateBounds(from, to)
	conds = append(conds, rangeConds...)
	query += " WHERE " + strings.Join(conds, " AND ")
	query += " GROUP BY merchant ORDER BY total DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query merchant summary: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summary := make(map[string]float64)
	for rows.Next() {
		var merchant string
		var total float64
		if err := rows.Scan(&merchant, &total); err != nil {
			return nil, fmt.Errorf("failed to scan merchant summary: %w", err)
		}
		summary[merchant] = total
	}

	return summary, rows.Err()
}

// GetExpenseTotal returns the summed expense amount, optionally bounded by
// date.
func (s *SQLiteStorage) GetExpenseTotal(ctx context.Context, from, to *time.Time) (float64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateDateRange(from, to); err != nil {
		return 0, err
	}

	query := `SELECT SUM(amount) FROM expenses`
	conds, args := dateBounds(from, to)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	var total sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to query expense total: %w", err)
	}
	if !total.Valid {
		return 0, nil
	}
	return total.Float64, nil
}

// GetExpenseCount returns the total number of recorded expenses.
func (s *SQLiteStorage) GetExpenseCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	return count, nil
}
