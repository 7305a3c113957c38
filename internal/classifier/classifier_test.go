package classifier

import (
	"sync"
	"testing"

	"kharcha/internal/model"
)

func TestClassifier_KeywordOnly(t *testing.T) {
	c := New(DefaultConfig())

	tests := []struct {
		name     string
		text     string
		want     model.Category
		wantConf float64
	}{
		{
			name:     "keyword match",
			text:     "dinner at swiggy",
			want:     model.CategoryDining,
			wantConf: DefaultFallbackConfidence,
		},
		{
			name:     "no keyword matches",
			text:     "miscellaneous stuff",
			want:     model.CategoryOther,
			wantConf: DefaultNoMatchConfidence,
		},
		{
			name:     "empty string",
			text:     "",
			want:     model.CategoryOther,
			wantConf: DefaultNoMatchConfidence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, confidence := c.Predict(tt.text)
			if got != tt.want {
				t.Errorf("Predict(%q) = %q, want %q", tt.text, got, tt.want)
			}
			if confidence != tt.wantConf {
				t.Errorf("confidence = %v, want %v", confidence, tt.wantConf)
			}
		})
	}
}

func TestClassifier_ModelPath(t *testing.T) {
	m, err := Train(trainingCorpus())
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	c := New(DefaultConfig())
	if c.Ready() {
		t.Error("Ready() = true before any model was loaded")
	}
	c.Replace(m)
	if !c.Ready() {
		t.Error("Ready() = false after Replace")
	}
	if c.Current() != m {
		t.Error("Current() did not return the replaced model")
	}

	// A confident model prediction bypasses the keyword table; the uber
	// training text is unambiguous enough to clear the threshold.
	got, confidence := c.Predict("uber ride to office")
	if got != model.CategoryTransport {
		t.Errorf("Predict() = %q, want %q", got, model.CategoryTransport)
	}
	if confidence < DefaultConfidenceThreshold {
		t.Errorf("confidence = %v, want at least %v for a clear training text", confidence, DefaultConfidenceThreshold)
	}

	c.Replace(nil)
	if c.Ready() {
		t.Error("Ready() = true after Replace(nil)")
	}
}

func TestClassifier_UnderConfidentFallsBack(t *testing.T) {
	// Two categories with symmetric vocabulary make "alpha" a coin toss,
	// far below the acceptance threshold.
	m, err := Train([]model.TrainingExample{
		{Text: "alpha beta", Label: model.CategoryGroceries},
		{Text: "alpha gamma", Label: model.CategoryDining},
	})
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	c := New(DefaultConfig())
	c.Replace(m)

	t.Run("fallback keyword decides", func(t *testing.T) {
		got, confidence := c.Predict("alpha swiggy")
		if got != model.CategoryDining {
			t.Errorf("Predict() = %q, want %q via keyword", got, model.CategoryDining)
		}
		if confidence != DefaultFallbackConfidence {
			t.Errorf("confidence = %v, want %v", confidence, DefaultFallbackConfidence)
		}
	})

	t.Run("no keyword lands on Other", func(t *testing.T) {
		got, confidence := c.Predict("alpha")
		if got != model.CategoryOther {
			t.Errorf("Predict() = %q, want %q", got, model.CategoryOther)
		}
		if confidence != DefaultNoMatchConfidence {
			t.Errorf("confidence = %v, want %v", confidence, DefaultNoMatchConfidence)
		}
	})
}

func TestClassifier_CustomRules(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rules = []KeywordRule{{Keyword: "chai", Category: model.CategoryDining}}
	c := New(cfg)

	if got, _ := c.Predict("evening chai"); got != model.CategoryDining {
		t.Errorf("Predict() = %q, want %q from custom rule", got, model.CategoryDining)
	}
	// The default table is replaced, not extended.
	if got, _ := c.Predict("uber ride"); got != model.CategoryOther {
		t.Errorf("Predict() = %q, want %q when custom rules omit transport", got, model.CategoryOther)
	}
}

func TestClassifier_ConcurrentPredictAndReplace(t *testing.T) {
	m, err := Train(trainingCorpus())
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	c := New(DefaultConfig())
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				category, confidence := c.Predict("swiggy dinner order")
				if !category.Valid() {
					t.Errorf("Predict() returned invalid category %q", category)
					return
				}
				if confidence < 0 || confidence > 1 {
					t.Errorf("Predict() returned confidence %v outside [0, 1]", confidence)
					return
				}
			}
		}()
	}
	for j := 0; j < 100; j++ {
		c.Replace(m)
		c.Replace(nil)
	}
	wg.Wait()
}
