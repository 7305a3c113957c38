package classifier

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"kharcha/internal/common"
)

func TestFileStore_LoadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "model.json"))
	_, err := store.Load()
	if !errors.Is(err, common.ErrModelNotFound) {
		t.Errorf("Load() error = %v, want ErrModelNotFound", err)
	}
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	trained, err := Train(trainingCorpus())
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	// The parent directory does not exist yet; Save must create it.
	path := filepath.Join(t.TempDir(), "models", "expense.json")
	store := NewFileStore(path)
	if err := store.Save(trained); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	wantCat, wantConf := trained.Predict("petrol for the bike")
	gotCat, gotConf := loaded.Predict("petrol for the bike")
	if gotCat != wantCat || gotConf != wantConf {
		t.Errorf("loaded model predicts (%q, %v), want (%q, %v)", gotCat, gotConf, wantCat, wantConf)
	}
	if loaded.Examples != trained.Examples {
		t.Errorf("loaded Examples = %d, want %d", loaded.Examples, trained.Examples)
	}
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "definitely not json{"},
		{name: "json but invalid model", content: `{"version": 1, "categories": ["Groceries"], "alpha": 0.1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "model.json")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatalf("writing fixture: %v", err)
			}
			_, err := NewFileStore(path).Load()
			if !errors.Is(err, common.ErrModelCorrupt) {
				t.Errorf("Load() error = %v, want ErrModelCorrupt", err)
			}
		})
	}
}

func TestFileStore_SaveReplacesAtomically(t *testing.T) {
	trained, err := Train(trainingCorpus())
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "model.json")
	store := NewFileStore(path)
	if err := store.Save(trained); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}
	if err := store.Save(trained); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	// No temporary file should linger after a successful save.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary artifact still present after Save: stat err = %v", err)
	}
	if _, err := store.Load(); err != nil {
		t.Errorf("Load() after repeated Save error = %v", err)
	}
}
