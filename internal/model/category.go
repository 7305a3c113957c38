// Package model defines the core domain types used throughout the application.
package model

import "fmt"

// Category is one of the fixed set of expense categories. The set is closed:
// every classifier prediction, keyword rule, and merchant mapping resolves to
// one of these values, so downstream code never sees an unrecognized category.
type Category string

// The twelve expense categories, in canonical order. CategoryOther is the
// catch-all used when no stronger signal exists.
const (
	CategoryGroceries     Category = "Groceries"
	CategoryDining        Category = "Dining"
	CategoryTransport     Category = "Transport"
	CategoryHousing       Category = "Housing"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealthcare    Category = "Healthcare"
	CategoryShopping      Category = "Shopping"
	CategoryEducation     Category = "Education"
	CategoryUtilities     Category = "Utilities"
	CategoryInsurance     Category = "Insurance"
	CategoryInvestment    Category = "Investment"
	CategoryOther         Category = "Other"
)

// allCategories fixes the canonical ordering. Classifier class indexes and
// deterministic tie-breaking both depend on this order never changing.
var allCategories = []Category{
	CategoryGroceries,
	CategoryDining,
	CategoryTransport,
	CategoryHousing,
	CategoryEntertainment,
	CategoryHealthcare,
	CategoryShopping,
	CategoryEducation,
	CategoryUtilities,
	CategoryInsurance,
	CategoryInvestment,
	CategoryOther,
}

// AllCategories returns the full category set in canonical order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// CategoryIndex returns the position of c in the canonical ordering, or -1 if
// c is not a known category.
func CategoryIndex(c Category) int {
	for i, cat := range allCategories {
		if cat == c {
			return i
		}
	}
	return -1
}

// ParseCategory validates a raw string against the closed category set.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category: %q", s)
	}
	return c, nil
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	return CategoryIndex(c) >= 0
}

// String returns the display name of the category.
func (c Category) String() string {
	return string(c)
}
