package model

import (
	"testing"
)

func TestNewBudget(t *testing.T) {
	tests := []struct {
		name           string
		income         float64
		savingsPercent float64
		wantSavings    float64
		wantErr        bool
	}{
		{
			name:           "typical budget",
			income:         50000,
			savingsPercent: 20,
			wantSavings:    10000,
		},
		{
			name:           "fractional savings rounds to paise",
			income:         33333,
			savingsPercent: 15,
			wantSavings:    4999.95,
		},
		{
			name:           "zero income",
			income:         0,
			savingsPercent: 10,
			wantSavings:    0,
		},
		{
			name:    "negative income",
			income:  -1,
			wantErr: true,
		},
		{
			name:           "percent over 100",
			income:         1000,
			savingsPercent: 120,
			wantErr:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBudget(tt.income, tt.savingsPercent)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewBudget(%v, %v) error = %v, wantErr %v", tt.income, tt.savingsPercent, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if b.RecommendedSavings != tt.wantSavings {
				t.Errorf("RecommendedSavings = %v, want %v", b.RecommendedSavings, tt.wantSavings)
			}
		})
	}
}

func TestBudget_Leftover(t *testing.T) {
	b, err := NewBudget(50000, 20)
	if err != nil {
		t.Fatalf("NewBudget() error = %v", err)
	}

	tests := []struct {
		name     string
		expenses float64
		want     float64
	}{
		{name: "normal month", expenses: 30000, want: 10000},
		{name: "no expenses", expenses: 0, want: 40000},
		{name: "overspent floors at zero", expenses: 60000, want: 0},
		{name: "exactly exhausted", expenses: 40000, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Leftover(tt.expenses); got != tt.want {
				t.Errorf("Leftover(%v) = %v, want %v", tt.expenses, got, tt.want)
			}
		})
	}
}

func TestPlanPayoff(t *testing.T) {
	debts := []Debt{
		{Name: "Car loan", Balance: 300000, InterestRate: 9.5, MinPayment: 8000},
		{Name: "Credit card", Balance: 45000, InterestRate: 36, MinPayment: 2000},
		{Name: "Personal loan", Balance: 120000, InterestRate: 14, MinPayment: 5000},
	}

	t.Run("avalanche orders by interest rate descending", func(t *testing.T) {
		got := PlanPayoff(debts, PayoffAvalanche)
		want := []string{"Credit card", "Personal loan", "Car loan"}
		for i, name := range want {
			if got[i].Name != name {
				t.Errorf("avalanche[%d] = %q, want %q", i, got[i].Name, name)
			}
		}
	})

	t.Run("snowball orders by balance ascending", func(t *testing.T) {
		got := PlanPayoff(debts, PayoffSnowball)
		want := []string{"Credit card", "Personal loan", "Car loan"}
		for i, name := range want {
			if got[i].Name != name {
				t.Errorf("snowball[%d] = %q, want %q", i, got[i].Name, name)
			}
		}
	})

	t.Run("input is not mutated", func(t *testing.T) {
		PlanPayoff(debts, PayoffSnowball)
		if debts[0].Name != "Car loan" {
			t.Errorf("input reordered, first debt now %q", debts[0].Name)
		}
	})

	t.Run("ties keep original order", func(t *testing.T) {
		tied := []Debt{
			{Name: "A", Balance: 1000, InterestRate: 10},
			{Name: "B", Balance: 1000, InterestRate: 10},
		}
		got := PlanPayoff(tied, PayoffAvalanche)
		if got[0].Name != "A" || got[1].Name != "B" {
			t.Errorf("tied debts reordered: %q, %q", got[0].Name, got[1].Name)
		}
	})
}

func TestParsePayoffMethod(t *testing.T) {
	if m, err := ParsePayoffMethod("avalanche"); err != nil || m != PayoffAvalanche {
		t.Errorf("ParsePayoffMethod(avalanche) = %v, %v", m, err)
	}
	if m, err := ParsePayoffMethod("snowball"); err != nil || m != PayoffSnowball {
		t.Errorf("ParsePayoffMethod(snowball) = %v, %v", m, err)
	}
	if _, err := ParsePayoffMethod("tsunami"); err == nil {
		t.Error("ParsePayoffMethod(tsunami) succeeded, want error")
	}
}

func TestSavingsGoal_Progress(t *testing.T) {
	tests := []struct {
		name string
		goal SavingsGoal
		want float64
	}{
		{name: "halfway", goal: SavingsGoal{Name: "Trip", Target: 20000, Saved: 10000}, want: 50},
		{name: "overfunded caps at 100", goal: SavingsGoal{Name: "Phone", Target: 10000, Saved: 15000}, want: 100},
		{name: "nothing saved", goal: SavingsGoal{Name: "Fund", Target: 5000}, want: 0},
		{name: "fractional progress", goal: SavingsGoal{Name: "Bike", Target: 90000, Saved: 30000}, want: 33.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.goal.Progress(); got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMerchantEntry_SurfaceForms(t *testing.T) {
	entry := MerchantEntry{
		Name:     "BigBazaar",
		Category: CategoryGroceries,
		Aliases:  []string{"Big Bazaar"},
	}
	forms := entry.SurfaceForms()
	if len(forms) != 2 {
		t.Fatalf("SurfaceForms() returned %d forms, want 2", len(forms))
	}
	if forms[0] != "bigbazaar" {
		t.Errorf("forms[0] = %q, want lowercase name", forms[0])
	}
	if forms[1] != "big bazaar" {
		t.Errorf("forms[1] = %q, want lowercase alias", forms[1])
	}
}
