package model

import "fmt"

// TrainingExample pairs one expense description with its labeled category.
type TrainingExample struct {
	Text  string
	Label Category
}

// Validate checks that the example is usable for training.
func (t *TrainingExample) Validate() error {
	if t.Text == "" {
		return fmt.Errorf("training example text cannot be empty")
	}
	if !t.Label.Valid() {
		return fmt.Errorf("unknown category %q in training example", t.Label)
	}
	return nil
}
