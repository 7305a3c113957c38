package storage

import (
	"context"
	"fmt"

	"kharcha/internal/model"
)

// SaveTrainingExample records a labeled example for the next retraining run.
// Duplicate text/label pairs are ignored, so repeated corrections of the same
// expense do not skew the corpus.
func (s *SQLiteStorage) SaveTrainingExample(ctx context.Context, example model.TrainingExample) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExample(example); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO training_examples (text, label)
		VALUES (?, ?)
	`, example.Text, string(example.Label))
	if err != nil {
		return fmt.Errorf("failed to save training example: %w", err)
	}
	return nil
}

// ListTrainingExamples returns all recorded examples in insertion order.
func (s *SQLiteStorage) ListTrainingExamples(ctx context.Context) ([]model.TrainingExample, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT text, label
		FROM training_examples
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query training examples: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var examples []model.TrainingExample
	for rows.Next() {
		var text, label string
		if err := rows.Scan(&text, &label); err != nil {
			return nil, fmt.Errorf("failed to scan training example: %w", err)
		}
		examples = append(examples, model.TrainingExample{
			Text:  text,
			Label: model.Category(label),
		})
	}

	return examples, rows.Err()
}
