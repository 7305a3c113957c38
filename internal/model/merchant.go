package model

import "strings"

// MerchantEntry describes a known merchant: its display name, the category it
// implies, and the lowercase surface forms that identify it in free text.
type MerchantEntry struct {
	Name     string   `yaml:"name"`
	Category Category `yaml:"category"`
	Aliases  []string `yaml:"aliases,omitempty"`
}

// SurfaceForms returns every lowercase string that should match this merchant
// in text: the name itself plus any aliases.
func (m *MerchantEntry) SurfaceForms() []string {
	forms := make([]string, 0, len(m.Aliases)+1)
	forms = append(forms, strings.ToLower(m.Name))
	for _, a := range m.Aliases {
		forms = append(forms, strings.ToLower(a))
	}
	return forms
}
