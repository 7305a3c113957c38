// Package config provides configuration utilities for the application.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"kharcha/internal/classifier"
	"kharcha/internal/extract"
	"kharcha/internal/model"
	"kharcha/internal/parser"
)

// ParserSettings collects the tunable parsing knobs resolved from Viper:
// confidence thresholds plus optional replacement dictionaries.
type ParserSettings struct {
	Merchants  []model.MerchantEntry
	Classifier classifier.Config
	Parser     parser.Config
}

// LoadParserSettings builds parser settings from Viper configuration
// (config file or KHARCHA_ env vars), falling back to the built-in defaults
// for anything unset.
func LoadParserSettings() (*ParserSettings, error) {
	cc := classifier.DefaultConfig()
	if viper.IsSet("parser.confidence_threshold") {
		cc.ConfidenceThreshold = viper.GetFloat64("parser.confidence_threshold")
	}
	if viper.IsSet("parser.fallback_confidence") {
		cc.FallbackConfidence = viper.GetFloat64("parser.fallback_confidence")
	}
	if viper.IsSet("parser.no_match_confidence") {
		cc.NoMatchConfidence = viper.GetFloat64("parser.no_match_confidence")
	}
	checks := []struct {
		name  string
		value float64
	}{
		{"parser.confidence_threshold", cc.ConfidenceThreshold},
		{"parser.fallback_confidence", cc.FallbackConfidence},
		{"parser.no_match_confidence", cc.NoMatchConfidence},
	}
	for _, c := range checks {
		if c.value < 0 || c.value > 1 {
			return nil, fmt.Errorf("%s must be between 0 and 1, got %v", c.name, c.value)
		}
	}

	if path := viper.GetString("parser.keywords_file"); path != "" {
		rules, err := classifier.LoadKeywordRules(ExpandPath(path))
		if err != nil {
			return nil, fmt.Errorf("failed to load keyword rules: %w", err)
		}
		cc.Rules = rules
	}

	pc := parser.DefaultConfig()
	if viper.IsSet("parser.override_confidence") {
		pc.OverrideConfidence = viper.GetFloat64("parser.override_confidence")
	}
	if pc.OverrideConfidence < 0 || pc.OverrideConfidence > 1 {
		return nil, fmt.Errorf("parser.override_confidence must be between 0 and 1, got %v", pc.OverrideConfidence)
	}

	merchants := extract.DefaultMerchants()
	if path := viper.GetString("parser.merchants_file"); path != "" {
		entries, err := extract.LoadMerchants(ExpandPath(path))
		if err != nil {
			return nil, fmt.Errorf("failed to load merchants: %w", err)
		}
		merchants = entries
	}

	return &ParserSettings{
		Merchants:  merchants,
		Classifier: cc,
		Parser:     pc,
	}, nil
}
