package extract

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"kharcha/internal/model"
)

// MerchantMatch is a recognized merchant occurrence in text.
type MerchantMatch struct {
	Name     string
	Category model.Category
}

type merchantForm struct {
	form  string
	entry int
}

// MerchantMatcher finds known merchants in free text by case-insensitive
// substring search. When several surface forms match, the longest form wins,
// so "amazon prime" beats "amazon"; equal lengths go to the earliest
// occurrence in the text. Built once, then read-only.
type MerchantMatcher struct {
	entries []model.MerchantEntry
	forms   []merchantForm
}

// NewMerchantMatcher builds a matcher over the dictionary. Every surface form
// must map to exactly one merchant.
func NewMerchantMatcher(entries []model.MerchantEntry) (*MerchantMatcher, error) {
	m := &MerchantMatcher{entries: entries}
	seen := make(map[string]string)
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("merchant %d has an empty name", i)
		}
		if !e.Category.Valid() {
			return nil, fmt.Errorf("merchant %q has unknown category %q", e.Name, e.Category)
		}
		for _, form := range e.SurfaceForms() {
			if form == "" {
				return nil, fmt.Errorf("merchant %q has an empty surface form", e.Name)
			}
			if owner, dup := seen[form]; dup {
				return nil, fmt.Errorf("surface form %q maps to both %q and %q", form, owner, e.Name)
			}
			seen[form] = e.Name
			m.forms = append(m.forms, merchantForm{form: form, entry: i})
		}
	}
	// Longest forms first, so the scan can stop at the first length tier
	// that produced a match.
	sort.SliceStable(m.forms, func(i, j int) bool {
		return len(m.forms[i].form) > len(m.forms[j].form)
	})
	return m, nil
}

// Find returns the best merchant match in the text, if any.
func (m *MerchantMatcher) Find(text string) (MerchantMatch, bool) {
	lower := strings.ToLower(text)

	bestEntry := -1
	bestLen := 0
	bestPos := 0
	for _, f := range m.forms {
		if bestEntry >= 0 && len(f.form) < bestLen {
			break
		}
		pos := strings.Index(lower, f.form)
		if pos < 0 {
			continue
		}
		if bestEntry < 0 || pos < bestPos {
			bestEntry, bestLen, bestPos = f.entry, len(f.form), pos
		}
	}
	if bestEntry < 0 {
		return MerchantMatch{}, false
	}
	e := m.entries[bestEntry]
	return MerchantMatch{Name: e.Name, Category: e.Category}, true
}

// merchantsFile is the on-disk format for a custom merchant dictionary.
type merchantsFile struct {
	Merchants []model.MerchantEntry `yaml:"merchants"`
}

// LoadMerchants reads a custom merchant dictionary from a YAML file,
// replacing the default dictionary entirely.
func LoadMerchants(path string) ([]model.MerchantEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read merchants file: %w", err)
	}
	var file merchantsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("could not parse merchants file: %w", err)
	}
	if len(file.Merchants) == 0 {
		return nil, fmt.Errorf("merchants file %s defines no merchants", path)
	}
	return file.Merchants, nil
}

// DefaultMerchants returns the built-in merchant dictionary. Payment apps
// (GPay, PhonePe, Paytm) are deliberately absent: they signal a payment
// method, not where the money went.
func DefaultMerchants() []model.MerchantEntry {
	return []model.MerchantEntry{
		{Name: "DMart", Category: model.CategoryGroceries},
		{Name: "BigBazaar", Category: model.CategoryGroceries, Aliases: []string{"big bazaar"}},
		{Name: "Reliance Fresh", Category: model.CategoryGroceries},
		{Name: "Swiggy", Category: model.CategoryDining},
		{Name: "Zomato", Category: model.CategoryDining},
		{Name: "Dominos", Category: model.CategoryDining, Aliases: []string{"domino's"}},
		{Name: "KFC", Category: model.CategoryDining},
		{Name: "McDonalds", Category: model.CategoryDining, Aliases: []string{"mcdonald's"}},
		{Name: "Haldiram", Category: model.CategoryDining, Aliases: []string{"haldiram's"}},
		{Name: "Uber", Category: model.CategoryTransport},
		{Name: "Ola", Category: model.CategoryTransport},
		{Name: "Rapido", Category: model.CategoryTransport},
		{Name: "IRCTC", Category: model.CategoryTransport},
		{Name: "Flipkart", Category: model.CategoryShopping},
		{Name: "Amazon", Category: model.CategoryShopping},
		{Name: "Myntra", Category: model.CategoryShopping},
		{Name: "AJIO", Category: model.CategoryShopping},
		{Name: "Meesho", Category: model.CategoryShopping},
		{Name: "Apollo", Category: model.CategoryHealthcare},
		{Name: "Medlife", Category: model.CategoryHealthcare},
		{Name: "Netmeds", Category: model.CategoryHealthcare},
		{Name: "1mg", Category: model.CategoryHealthcare},
		{Name: "Netflix", Category: model.CategoryEntertainment},
		{Name: "Amazon Prime", Category: model.CategoryEntertainment, Aliases: []string{"prime video", "prime"}},
		{Name: "Hotstar", Category: model.CategoryEntertainment},
		{Name: "Spotify", Category: model.CategoryEntertainment},
		{Name: "PVR", Category: model.CategoryEntertainment},
		{Name: "BookMyShow", Category: model.CategoryEntertainment},
		{Name: "Udemy", Category: model.CategoryEducation},
		{Name: "Coursera", Category: model.CategoryEducation},
		{Name: "Zerodha", Category: model.CategoryInvestment},
		{Name: "Groww", Category: model.CategoryInvestment},
		{Name: "LIC", Category: model.CategoryInsurance},
	}
}
