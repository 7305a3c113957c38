package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	daysAgoPattern = regexp.MustCompile(`(\d+)\s+days?\s+ago`)
	separatorDate  = regexp.MustCompile(`^\d{1,4}[/-]\d{1,2}(?:[/-]\d{1,4})?$`)
	compactDate    = regexp.MustCompile(`^\d{8}$`)
	fourDigitYear  = regexp.MustCompile(`\b\d{4}\b`)
)

var monthNames = map[string]bool{
	"jan": true, "january": true,
	"feb": true, "february": true,
	"mar": true, "march": true,
	"apr": true, "april": true,
	"may": true,
	"jun": true, "june": true,
	"jul": true, "july": true,
	"aug": true, "august": true,
	"sep": true, "sept": true, "september": true,
	"oct": true, "october": true,
	"nov": true, "november": true,
	"dec": true, "december": true,
}

// Date resolves the date signal in text against the reference date. Relative
// keywords are checked first, then absolute date-like substrings; text with
// no date signal resolves to the reference date itself. The reference is
// injected by the caller, never read from the clock, so resolution is
// deterministic.
func Date(text string, ref time.Time) time.Time {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "yesterday") {
		return dateOnly(ref.AddDate(0, 0, -1))
	}
	if strings.Contains(lower, "today") || strings.Contains(lower, "just now") {
		return dateOnly(ref)
	}
	if m := daysAgoPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return dateOnly(ref.AddDate(0, 0, -n))
		}
	}
	if strings.Contains(lower, "last week") {
		return dateOnly(ref.AddDate(0, 0, -7))
	}
	if d, ok := absoluteDate(lower, ref); ok {
		return d
	}
	return dateOnly(ref)
}

// absoluteDate scans for date-like substrings: separator-delimited or compact
// numeric tokens ("19/12/2025", "20251219"), then token windows naming a
// month ("19 dec 2025", "5 march"). Bare numbers are never treated as dates;
// they are almost always amounts. Day-first reading is preferred, matching
// Indian convention. A month window without a year borrows the reference
// year and rolls back one year if that lands in the future.
func absoluteDate(lower string, ref time.Time) (time.Time, bool) {
	fields := strings.Fields(lower)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, strings.Trim(f, ".,!?;:()₹"))
	}

	for _, tok := range tokens {
		if !separatorDate.MatchString(tok) && !compactDate.MatchString(tok) {
			continue
		}
		if t, err := parseIn(tok, ref); err == nil {
			return dateOnly(t), true
		}
	}

	for size := 3; size >= 2; size-- {
		for i := 0; i+size <= len(tokens); i++ {
			window := tokens[i : i+size]
			if !windowHasMonth(window) || !windowHasDigit(window) {
				continue
			}
			s := strings.Join(window, " ")
			hasYear := fourDigitYear.MatchString(s)
			if !hasYear {
				s += " " + strconv.Itoa(ref.Year())
			}
			t, err := parseIn(s, ref)
			if err != nil {
				continue
			}
			if !hasYear && t.After(ref) {
				t = t.AddDate(-1, 0, 0)
			}
			return dateOnly(t), true
		}
	}

	return time.Time{}, false
}

func parseIn(s string, ref time.Time) (time.Time, error) {
	return dateparse.ParseIn(s, ref.Location(),
		dateparse.PreferMonthFirst(false),
		dateparse.RetryAmbiguousDateWithSwap(true))
}

func windowHasMonth(window []string) bool {
	for _, tok := range window {
		if monthNames[tok] {
			return true
		}
	}
	return false
}

func windowHasDigit(window []string) bool {
	for _, tok := range window {
		for _, r := range tok {
			if r >= '0' && r <= '9' {
				return true
			}
		}
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
