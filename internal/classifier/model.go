// Package classifier predicts an expense category for free text. A trained
// multinomial Naive Bayes model over TF-IDF features does the heavy lifting;
// an ordered keyword table serves as the deterministic fallback whenever the
// model is missing or under-confident.
package classifier

import (
	"fmt"
	"math"
	"time"

	"kharcha/internal/feature"
	"kharcha/internal/model"
)

// DefaultAlpha is the Laplace smoothing constant applied during training.
const DefaultAlpha = 0.1

// Model is the trained classification artifact. It is immutable once built:
// inference only reads it, and retraining produces a whole new value.
type Model struct {
	Version       int              `json:"version"`
	TrainedAt     time.Time        `json:"trained_at"`
	Examples      int              `json:"examples"`
	Alpha         float64          `json:"alpha"`
	Vocabulary    map[string]int   `json:"vocabulary"`
	IDF           []float64        `json:"idf"`
	Categories    []model.Category `json:"categories"`
	LogPriors     []float64        `json:"log_priors"`
	LogLikelihood [][]float64      `json:"log_likelihood"`

	vec *feature.Vectorizer
}

// ModelVersion is the artifact schema version written by Train.
const ModelVersion = 1

// Train fits a vectorizer and a multinomial Naive Bayes model on the corpus.
// Only categories present in the corpus become part of the model; their order
// follows the canonical category order so tie-breaking stays deterministic.
func Train(corpus []model.TrainingExample) (*Model, error) {
	if len(corpus) == 0 {
		return nil, fmt.Errorf("training corpus is empty")
	}
	for i := range corpus {
		if err := corpus[i].Validate(); err != nil {
			return nil, fmt.Errorf("training example %d: %w", i, err)
		}
	}

	texts := make([]string, len(corpus))
	for i, ex := range corpus {
		texts[i] = ex.Text
	}
	vec := feature.Fit(texts)

	counts := make(map[model.Category]int)
	for _, ex := range corpus {
		counts[ex.Label]++
	}
	var categories []model.Category
	for _, c := range model.AllCategories() {
		if counts[c] > 0 {
			categories = append(categories, c)
		}
	}

	index := make(map[model.Category]int, len(categories))
	for i, c := range categories {
		index[c] = i
	}

	// Sum the TF-IDF mass each category puts on each feature.
	sums := make([][]float64, len(categories))
	for i := range sums {
		sums[i] = make([]float64, vec.Len())
	}
	for _, ex := range corpus {
		ci := index[ex.Label]
		for f, w := range vec.Transform(ex.Text) {
			sums[ci][f] += w
		}
	}

	alpha := DefaultAlpha
	vocabSize := float64(vec.Len())
	logPriors := make([]float64, len(categories))
	logLikelihood := make([][]float64, len(categories))
	total := float64(len(corpus))
	for ci, c := range categories {
		logPriors[ci] = math.Log(float64(counts[c]) / total)

		var mass float64
		for _, w := range sums[ci] {
			mass += w
		}
		denom := mass + alpha*vocabSize
		row := make([]float64, vec.Len())
		for f, w := range sums[ci] {
			row[f] = math.Log((w + alpha) / denom)
		}
		logLikelihood[ci] = row
	}

	return &Model{
		Version:       ModelVersion,
		TrainedAt:     time.Now().UTC(),
		Examples:      len(corpus),
		Alpha:         alpha,
		Vocabulary:    vec.Vocabulary(),
		IDF:           vec.IDF(),
		Categories:    categories,
		LogPriors:     logPriors,
		LogLikelihood: logLikelihood,
		vec:           vec,
	}, nil
}

// Prepare validates the artifact and rebuilds its internal vectorizer. It
// must be called after deserializing a model before the first Predict.
func (m *Model) Prepare() error {
	if len(m.Categories) == 0 {
		return fmt.Errorf("model has no categories")
	}
	if len(m.LogPriors) != len(m.Categories) || len(m.LogLikelihood) != len(m.Categories) {
		return fmt.Errorf("model has %d categories but %d priors and %d likelihood rows",
			len(m.Categories), len(m.LogPriors), len(m.LogLikelihood))
	}
	for _, c := range m.Categories {
		if !c.Valid() {
			return fmt.Errorf("model contains unknown category %q", c)
		}
	}
	for i, row := range m.LogLikelihood {
		if len(row) != len(m.IDF) {
			return fmt.Errorf("likelihood row %d has %d features, want %d", i, len(row), len(m.IDF))
		}
	}
	if m.Alpha <= 0 {
		return fmt.Errorf("model smoothing alpha must be positive, got %v", m.Alpha)
	}
	vec, err := feature.NewVectorizer(m.Vocabulary, m.IDF)
	if err != nil {
		return fmt.Errorf("rebuilding vectorizer: %w", err)
	}
	m.vec = vec
	return nil
}

// Predict returns the most likely category for the text together with a
// softmax confidence over the model's categories. Identical text against the
// same model always yields the same result; ties resolve to the earlier
// category in canonical order.
func (m *Model) Predict(text string) (model.Category, float64) {
	x := m.vec.Transform(text)

	scores := make([]float64, len(m.Categories))
	for ci := range m.Categories {
		s := m.LogPriors[ci]
		row := m.LogLikelihood[ci]
		for f, w := range x {
			if w != 0 {
				s += w * row[f]
			}
		}
		scores[ci] = s
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}

	// Softmax with the max subtracted keeps the exponentials in range.
	var sum float64
	for _, s := range scores {
		sum += math.Exp(s - scores[best])
	}
	return m.Categories[best], clampConfidence(1 / sum)
}

// Accuracy reports the fraction of examples the model labels correctly.
func (m *Model) Accuracy(examples []model.TrainingExample) float64 {
	if len(examples) == 0 {
		return 0
	}
	correct := 0
	for _, ex := range examples {
		if got, _ := m.Predict(ex.Text); got == ex.Label {
			correct++
		}
	}
	return float64(correct) / float64(len(examples))
}

// clampConfidence forces a score into [0, 1] so callers never see NaN or an
// out-of-range value.
func clampConfidence(c float64) float64 {
	switch {
	case math.IsNaN(c), c < 0:
		return 0
	case c > 1:
		return 1
	}
	return c
}
