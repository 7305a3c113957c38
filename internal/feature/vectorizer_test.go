package feature

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "lowercases and strips punctuation",
			input: "Paid ₹1200 for Swiggy!",
			want:  []string{"paid", "1200", "for", "swiggy"},
		},
		{
			name:  "commas split numbers",
			input: "rs 1,200 dinner",
			want:  []string{"rs", "1", "200", "dinner"},
		},
		{
			name:  "collapses whitespace",
			input: "  uber   ride  ",
			want:  []string{"uber", "ride"},
		},
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "only punctuation",
			input: "₹!?.",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTerms(t *testing.T) {
	got := Terms([]string{"uber", "ride", "airport"})
	want := []string{"uber", "ride", "airport", "uber ride", "ride airport"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}

	if terms := Terms(nil); terms != nil {
		t.Errorf("Terms(nil) = %v, want nil", terms)
	}
	if terms := Terms([]string{"solo"}); !reflect.DeepEqual(terms, []string{"solo"}) {
		t.Errorf("Terms(single token) = %v, want just the unigram", terms)
	}
}

func TestFitTransform(t *testing.T) {
	corpus := []string{
		"grocery shopping at dmart",
		"dinner at restaurant",
		"grocery vegetables",
	}
	v := Fit(corpus)

	t.Run("idf uses smoothed formula", func(t *testing.T) {
		vocab := v.Vocabulary()
		idf := v.IDF()
		idx, ok := vocab["grocery"]
		if !ok {
			t.Fatal("vocabulary missing term grocery")
		}
		// grocery appears in 2 of 3 documents.
		want := math.Log(4.0/3.0) + 1
		if math.Abs(idf[idx]-want) > 1e-12 {
			t.Errorf("idf(grocery) = %v, want %v", idf[idx], want)
		}
	})

	t.Run("transform is L2 normalized", func(t *testing.T) {
		vec := v.Transform("grocery shopping at dmart")
		var norm float64
		for _, w := range vec {
			norm += w * w
		}
		if math.Abs(norm-1) > 1e-12 {
			t.Errorf("squared norm = %v, want 1", norm)
		}
	})

	t.Run("unknown terms are dropped", func(t *testing.T) {
		vec := v.Transform("quantum entanglement")
		for i, w := range vec {
			if w != 0 {
				t.Errorf("vec[%d] = %v for fully unseen text, want all zeros", i, w)
			}
		}
	})

	t.Run("empty text yields zero vector", func(t *testing.T) {
		vec := v.Transform("")
		if len(vec) != v.Len() {
			t.Fatalf("len(vec) = %d, want %d", len(vec), v.Len())
		}
		for _, w := range vec {
			if w != 0 {
				t.Error("non-zero weight for empty text")
				break
			}
		}
	})

	t.Run("fit is deterministic", func(t *testing.T) {
		again := Fit(corpus)
		if !reflect.DeepEqual(v.Vocabulary(), again.Vocabulary()) {
			t.Error("two fits of the same corpus produced different vocabularies")
		}
		if !reflect.DeepEqual(v.IDF(), again.IDF()) {
			t.Error("two fits of the same corpus produced different IDF weights")
		}
	})

	t.Run("transform is deterministic", func(t *testing.T) {
		a := v.Transform("grocery dinner")
		b := v.Transform("grocery dinner")
		if !reflect.DeepEqual(a, b) {
			t.Error("two transforms of the same text differ")
		}
	})
}

func TestFitCapsVocabulary(t *testing.T) {
	words := make([]string, 600)
	for i := range words {
		words[i] = fmt.Sprintf("w%03d", i)
	}
	v := Fit([]string{strings.Join(words, " ")})

	if v.Len() != maxFeatures {
		t.Fatalf("Len() = %d, want %d", v.Len(), maxFeatures)
	}

	// All terms tie at one occurrence, so first appearance wins: the
	// unigrams in document order fill the whole vocabulary.
	vocab := v.Vocabulary()
	if _, ok := vocab["w000"]; !ok {
		t.Error("vocabulary missing first-seen term w000")
	}
	if _, ok := vocab["w499"]; !ok {
		t.Error("vocabulary missing term w499")
	}
	if _, ok := vocab["w500"]; ok {
		t.Error("vocabulary kept term w500 beyond the cap")
	}
	if _, ok := vocab["w000 w001"]; ok {
		t.Error("vocabulary kept a bigram over earlier-seen unigrams")
	}
}

func TestNewVectorizer(t *testing.T) {
	tests := []struct {
		name       string
		vocabulary map[string]int
		idf        []float64
		wantErr    bool
	}{
		{
			name:       "valid state",
			vocabulary: map[string]int{"grocery": 0, "dinner": 1},
			idf:        []float64{1.1, 1.4},
		},
		{
			name:       "size mismatch",
			vocabulary: map[string]int{"grocery": 0},
			idf:        []float64{1.1, 1.4},
			wantErr:    true,
		},
		{
			name:       "index out of range",
			vocabulary: map[string]int{"grocery": 0, "dinner": 5},
			idf:        []float64{1.1, 1.4},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewVectorizer(tt.vocabulary, tt.idf)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewVectorizer() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && v.Len() != len(tt.idf) {
				t.Errorf("Len() = %d, want %d", v.Len(), len(tt.idf))
			}
		})
	}

	t.Run("round-trips through accessors", func(t *testing.T) {
		fitted := Fit([]string{"grocery shopping", "dinner out"})
		rebuilt, err := NewVectorizer(fitted.Vocabulary(), fitted.IDF())
		if err != nil {
			t.Fatalf("NewVectorizer() error = %v", err)
		}
		want := fitted.Transform("grocery dinner")
		got := rebuilt.Transform("grocery dinner")
		if !reflect.DeepEqual(got, want) {
			t.Error("rebuilt vectorizer transforms differently from the fitted one")
		}
	})
}
