package model

import (
	"strings"
	"testing"
	"time"
)

func validExpense() Expense {
	return Expense{
		ID:       "exp-1",
		Date:     time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC),
		Amount:   500,
		Category: CategoryGroceries,
		Source:   SourceText,
	}
}

func TestExpense_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Expense)
		errMsg  string
		wantErr bool
	}{
		{
			name:   "valid minimal expense",
			modify: func(*Expense) {},
		},
		{
			name: "valid with payment method and merchant",
			modify: func(e *Expense) {
				e.PaymentMethod = PaymentUPI
				e.Merchant = "DMart"
			},
		},
		{
			name:    "missing ID",
			modify:  func(e *Expense) { e.ID = "" },
			wantErr: true,
			errMsg:  "ID cannot be empty",
		},
		{
			name:    "zero amount",
			modify:  func(e *Expense) { e.Amount = 0 },
			wantErr: true,
			errMsg:  "must be positive",
		},
		{
			name:    "negative amount",
			modify:  func(e *Expense) { e.Amount = -50 },
			wantErr: true,
			errMsg:  "must be positive",
		},
		{
			name:    "unknown category",
			modify:  func(e *Expense) { e.Category = "Gambling" },
			wantErr: true,
			errMsg:  "unknown category",
		},
		{
			name:    "unknown payment method",
			modify:  func(e *Expense) { e.PaymentMethod = "CHEQUE" },
			wantErr: true,
			errMsg:  "unknown payment method",
		},
		{
			name:    "unknown source",
			modify:  func(e *Expense) { e.Source = "SCRAPED" },
			wantErr: true,
			errMsg:  "unknown expense source",
		},
		{
			name:    "zero date",
			modify:  func(e *Expense) { e.Date = time.Time{} },
			wantErr: true,
			errMsg:  "date cannot be zero",
		},
		{
			name:    "confidence above one",
			modify:  func(e *Expense) { e.Confidence = 1.2 },
			wantErr: true,
			errMsg:  "between 0 and 1",
		},
		{
			name:    "negative confidence",
			modify:  func(e *Expense) { e.Confidence = -0.1 },
			wantErr: true,
			errMsg:  "between 0 and 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validExpense()
			tt.modify(&e)
			err := e.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.errMsg)
			}
		})
	}
}

func TestFromParsed(t *testing.T) {
	parsed := ParsedExpense{
		Date:          time.Date(2025, 12, 18, 0, 0, 0, 0, time.UTC),
		RawText:       "paid ₹1200 for Swiggy dinner",
		Merchant:      "Swiggy",
		Category:      CategoryDining,
		PaymentMethod: PaymentUPI,
		Amount:        1200,
		Confidence:    0.95,
	}

	e := FromParsed("exp-42", &parsed)
	if err := e.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if e.ID != "exp-42" {
		t.Errorf("ID = %q", e.ID)
	}
	if e.Source != SourceText {
		t.Errorf("Source = %q, want %q", e.Source, SourceText)
	}
	if e.Note != parsed.RawText {
		t.Errorf("Note = %q, want raw text preserved", e.Note)
	}
	if e.Amount != 1200 || e.Category != CategoryDining || e.Merchant != "Swiggy" {
		t.Errorf("copied fields mismatch: %+v", e)
	}
	if e.Confidence != 0.95 || e.PaymentMethod != PaymentUPI {
		t.Errorf("copied fields mismatch: %+v", e)
	}
	if !e.CreatedAt.IsZero() {
		t.Errorf("CreatedAt = %v, want zero for storage to fill", e.CreatedAt)
	}
}

func TestParsedExpense_Flags(t *testing.T) {
	empty := ParsedExpense{}
	if empty.HasMerchant() {
		t.Error("HasMerchant() = true for empty merchant")
	}
	if empty.HasDate() {
		t.Error("HasDate() = true for zero date")
	}

	full := ParsedExpense{
		Merchant: "Swiggy",
		Date:     time.Date(2025, 12, 18, 0, 0, 0, 0, time.UTC),
	}
	if !full.HasMerchant() {
		t.Error("HasMerchant() = false for set merchant")
	}
	if !full.HasDate() {
		t.Error("HasDate() = false for set date")
	}
}

func TestPaymentMethod_Valid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentUPI, PaymentCash, PaymentCard, PaymentNetBanking} {
		if !m.Valid() {
			t.Errorf("%q.Valid() = false, want true", m)
		}
	}
	for _, m := range []PaymentMethod{"", "CHEQUE", "upi"} {
		if m.Valid() {
			t.Errorf("%q.Valid() = true, want false", m)
		}
	}
}
