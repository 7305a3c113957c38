package model

import (
	"fmt"
	"time"
)

// ExpenseSource indicates how an expense entered the system.
type ExpenseSource string

const (
	// SourceForm indicates the expense was entered through a structured form
	// or command flags.
	SourceForm ExpenseSource = "FORM"
	// SourceText indicates the expense was parsed from natural language.
	SourceText ExpenseSource = "TEXT"
	// SourceImport indicates the expense was loaded from a CSV import.
	SourceImport ExpenseSource = "IMPORT"
)

// ParsedExpense is the structured result of parsing one natural-language
// expense description. Amount and Category are always populated on success;
// the remaining entity fields are zero when the text carried no signal for
// them.
type ParsedExpense struct {
	Date          time.Time
	RawText       string
	Merchant      string
	Category      Category
	PaymentMethod PaymentMethod
	Amount        float64
	Confidence    float64
}

// HasMerchant reports whether a known merchant was recognized in the text.
func (p *ParsedExpense) HasMerchant() bool {
	return p.Merchant != ""
}

// HasDate reports whether a date was recognized in the text.
func (p *ParsedExpense) HasDate() bool {
	return !p.Date.IsZero()
}

// Expense represents a recorded expense in storage, regardless of how it was
// captured.
type Expense struct {
	Date          time.Time
	CreatedAt     time.Time
	ID            string
	Note          string
	Merchant      string
	Category      Category
	PaymentMethod PaymentMethod
	Source        ExpenseSource
	Amount        float64
	Confidence    float64
}

// FromParsed builds a persistable expense from a parse result. The caller
// supplies the ID; CreatedAt is filled in by storage when left zero.
func FromParsed(id string, p *ParsedExpense) Expense {
	return Expense{
		ID:            id,
		Date:          p.Date,
		Amount:        p.Amount,
		Category:      p.Category,
		Merchant:      p.Merchant,
		PaymentMethod: p.PaymentMethod,
		Note:          p.RawText,
		Confidence:    p.Confidence,
		Source:        SourceText,
	}
}

// Validate checks that the expense is well formed before it is persisted.
func (e *Expense) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("expense ID cannot be empty")
	}
	if e.Amount <= 0 {
		return fmt.Errorf("expense amount must be positive, got %.2f", e.Amount)
	}
	if !e.Category.Valid() {
		return fmt.Errorf("unknown category %q", e.Category)
	}
	if e.PaymentMethod != "" && !e.PaymentMethod.Valid() {
		return fmt.Errorf("unknown payment method %q", e.PaymentMethod)
	}
	switch e.Source {
	case SourceForm, SourceText, SourceImport:
	default:
		return fmt.Errorf("unknown expense source %q", e.Source)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("expense date cannot be zero")
	}
	if e.Confidence < 0 || e.Confidence > 1 {
		return fmt.Errorf("expense confidence must be between 0 and 1, got %.2f", e.Confidence)
	}
	return nil
}
