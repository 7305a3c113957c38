// Package parser turns a free-form expense sentence into a structured
// record. It wires the entity extractors and the category classifier
// together and applies the merchant-override policy that reconciles their
// signals into one category and confidence.
package parser

import (
	"log/slog"
	"time"

	"kharcha/internal/classifier"
	"kharcha/internal/extract"
	"kharcha/internal/model"
)

// DefaultOverrideConfidence is reported when a recognized merchant decides
// the category.
const DefaultOverrideConfidence = 0.95

// Config tunes the orchestration policy.
type Config struct {
	// OverrideConfidence is assigned whenever a known merchant decides
	// the category.
	OverrideConfidence float64
}

// DefaultConfig returns the standard policy tuning.
func DefaultConfig() Config {
	return Config{OverrideConfidence: DefaultOverrideConfidence}
}

// Parser parses natural-language expense descriptions. It is safe for
// concurrent use: all dictionaries are immutable after construction and the
// classifier swaps models atomically.
type Parser struct {
	cfg        Config
	classifier *classifier.Classifier
	merchants  *extract.MerchantMatcher
	logger     *slog.Logger
}

// New assembles a parser from its collaborators. A nil logger falls back to
// the process default.
func New(cfg Config, cls *classifier.Classifier, merchants *extract.MerchantMatcher, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		cfg:        cfg,
		classifier: cls,
		merchants:  merchants,
		logger:     logger,
	}
}

// Parse converts one expense sentence into a structured record, resolving
// relative dates against the caller's reference date. The only hard failure
// is a missing amount (common.ErrAmountNotFound); every other signal
// degrades to a best-effort default or stays absent.
func (p *Parser) Parse(text string, ref time.Time) (*model.ParsedExpense, error) {
	amount, err := extract.Amount(text)
	if err != nil {
		return nil, err
	}

	merchant, merchantFound := p.merchants.Find(text)
	date := extract.Date(text, ref)
	payment, _ := extract.PaymentMethod(text)

	category, confidence := p.resolveCategory(text, merchant, merchantFound)

	parsed := &model.ParsedExpense{
		RawText:       text,
		Amount:        amount,
		Category:      category,
		Confidence:    confidence,
		Date:          date,
		PaymentMethod: payment,
	}
	if merchantFound {
		parsed.Merchant = merchant.Name
	}

	p.logger.Debug("parsed expense text",
		"amount", amount,
		"category", category,
		"confidence", confidence,
		"merchant", parsed.Merchant,
		"date", date.Format("2006-01-02"),
	)
	return parsed, nil
}

// Suggest predicts a category for a partial text while the user is still
// typing. It skips amount extraction entirely, so it never fails, even on an
// empty string. Debouncing is the caller's concern.
func (p *Parser) Suggest(text string) (model.Category, float64) {
	return p.classifier.Predict(text)
}

// Ready reports whether a trained model is loaded; false means predictions
// run on the keyword fallback alone.
func (p *Parser) Ready() bool {
	return p.classifier.Ready()
}

// resolveCategory is the one decision table merging the classifier and
// merchant signals. Merchant identity is the strongest signal available: a
// recognized merchant always decides the category at override confidence,
// whatever the classifier would have said. Without a merchant the
// classifier's own prediction stands, fallback path included.
func (p *Parser) resolveCategory(text string, merchant extract.MerchantMatch, merchantFound bool) (model.Category, float64) {
	category, confidence := p.classifier.Predict(text)
	if !merchantFound {
		return category, confidence
	}
	if merchant.Category != category {
		p.logger.Debug("merchant overrides classifier",
			"merchant", merchant.Name,
			"merchant_category", merchant.Category,
			"classifier_category", category,
			"classifier_confidence", confidence,
		)
	}
	return merchant.Category, p.cfg.OverrideConfidence
}
