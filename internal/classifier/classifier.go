package classifier

import (
	"sync/atomic"

	"kharcha/internal/model"
)

// Default confidence tuning. The values are starting points, not laws;
// Config lets callers adjust them.
const (
	// DefaultConfidenceThreshold is the minimum model confidence accepted
	// before the keyword fallback takes over.
	DefaultConfidenceThreshold = 0.70
	// DefaultFallbackConfidence is reported when a keyword rule decides.
	DefaultFallbackConfidence = 0.60
	// DefaultNoMatchConfidence is reported when nothing matches at all.
	DefaultNoMatchConfidence = 0.10
)

// Config tunes the classifier's fallback behavior.
type Config struct {
	// ConfidenceThreshold is the minimum model confidence required to
	// accept the model's prediction.
	ConfidenceThreshold float64
	// FallbackConfidence is assigned to keyword-rule matches.
	FallbackConfidence float64
	// NoMatchConfidence is assigned to the catch-all Other prediction.
	NoMatchConfidence float64
	// Rules overrides the keyword table; nil means the default table.
	Rules []KeywordRule
}

// DefaultConfig returns the standard fallback tuning.
func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold: DefaultConfidenceThreshold,
		FallbackConfidence:  DefaultFallbackConfidence,
		NoMatchConfidence:   DefaultNoMatchConfidence,
	}
}

// Classifier predicts an expense category for free text. It holds the
// current model behind an atomic pointer, so Predict can run concurrently
// with a Replace from a retrain or reload. A Classifier with no model is
// fully functional on the keyword path alone.
type Classifier struct {
	cfg   Config
	rules []KeywordRule
	model atomic.Pointer[Model]
}

// New creates a classifier with no model loaded.
func New(cfg Config) *Classifier {
	rules := cfg.Rules
	if rules == nil {
		rules = DefaultKeywordRules()
	}
	return &Classifier{cfg: cfg, rules: rules}
}

// Replace atomically swaps in a new model. In-flight predictions finish
// against the model they started with. Passing nil drops back to
// keyword-only operation.
func (c *Classifier) Replace(m *Model) {
	c.model.Store(m)
}

// Ready reports whether a trained model is currently loaded.
func (c *Classifier) Ready() bool {
	return c.model.Load() != nil
}

// Current returns the loaded model, or nil when running keyword-only.
func (c *Classifier) Current() *Model {
	return c.model.Load()
}

// Predict returns a category and a confidence in [0, 1] for the text. The
// model decides when it is loaded and confident enough; otherwise the
// keyword table decides; otherwise the result is Other with low confidence.
// Predict never fails, even on an empty string.
func (c *Classifier) Predict(text string) (model.Category, float64) {
	if m := c.model.Load(); m != nil {
		category, confidence := m.Predict(text)
		if confidence >= c.cfg.ConfidenceThreshold {
			return category, confidence
		}
	}
	if category, ok := MatchKeyword(c.rules, text); ok {
		return category, c.cfg.FallbackConfidence
	}
	return model.CategoryOther, c.cfg.NoMatchConfidence
}
