// Package extract pulls structured entities out of free-form expense text:
// the amount spent, a known merchant, a date, and a payment method. Each
// extractor is independent and total; everything except the amount reports
// absence rather than failing.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"kharcha/internal/common"
)

// Amount patterns in priority order: currency-prefixed, currency-suffixed,
// after a spend verb, before "for"/"on". The first pattern that matches
// decides, and within a pattern the first occurrence in reading order wins.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:\brs\.?|₹)\s*(\d+(?:,\d+)*(?:\.\d{2})?)`),
	regexp.MustCompile(`(\d+(?:,\d+)*(?:\.\d{2})?)\s*(?:rs\b|rupees\b)`),
	regexp.MustCompile(`\b(?:spent|paid|cost|worth)\s+(\d+(?:,\d+)*(?:\.\d{2})?)`),
	regexp.MustCompile(`(\d+(?:,\d+)*(?:\.\d{2})?)\s+(?:for|on)\b`),
}

var bareNumber = regexp.MustCompile(`\d+(?:\.\d{2})?`)

// Amount finds the spend amount in text. Exactly one amount is assumed per
// sentence, so the first match wins, never the largest. Zero is not a spend;
// a text with no positive numeric signal fails with common.ErrAmountNotFound.
func Amount(text string) (float64, error) {
	lower := strings.ToLower(text)

	for _, p := range amountPatterns {
		m := p.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		if v > 0 {
			return v, nil
		}
	}

	// Last resort: the first bare number anywhere in the text.
	for _, m := range bareNumber.FindAllString(lower, -1) {
		v, err := strconv.ParseFloat(m, 64)
		if err == nil && v > 0 {
			return v, nil
		}
	}

	return 0, common.ErrAmountNotFound
}
