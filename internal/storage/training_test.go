package storage

import (
	"context"
	"errors"
	"testing"

	"kharcha/internal/model"
)

func TestTrainingExamples_SaveList(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	examples := []model.TrainingExample{
		{Text: "uber ride 250 to airport", Label: model.CategoryTransport},
		{Text: "netflix subscription 199", Label: model.CategoryEntertainment},
	}
	for _, ex := range examples {
		if err := store.SaveTrainingExample(ctx, ex); err != nil {
			t.Fatalf("SaveTrainingExample() error = %v", err)
		}
	}

	// Same text/label pair is ignored on repeat
	if err := store.SaveTrainingExample(ctx, examples[0]); err != nil {
		t.Fatalf("duplicate SaveTrainingExample() error = %v", err)
	}

	got, err := store.ListTrainingExamples(ctx)
	if err != nil {
		t.Fatalf("ListTrainingExamples() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0] != examples[0] || got[1] != examples[1] {
		t.Errorf("got %+v, want insertion order preserved", got)
	}

	// Same text under a new label is a distinct correction
	relabel := model.TrainingExample{Text: "uber ride 250 to airport", Label: model.CategoryOther}
	if err := store.SaveTrainingExample(ctx, relabel); err != nil {
		t.Fatalf("SaveTrainingExample() error = %v", err)
	}
	got, err = store.ListTrainingExamples(ctx)
	if err != nil {
		t.Fatalf("ListTrainingExamples() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want 3 after relabel", len(got))
	}
}

func TestSaveTrainingExample_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	bad := []model.TrainingExample{
		{Text: "", Label: model.CategoryOther},
		{Text: "some expense", Label: "Snacks"},
	}
	for _, ex := range bad {
		if err := store.SaveTrainingExample(ctx, ex); !errors.Is(err, ErrInvalidExample) {
			t.Errorf("SaveTrainingExample(%+v) error = %v, want ErrInvalidExample", ex, err)
		}
	}
}
