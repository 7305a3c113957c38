package model

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Budget captures a monthly income and savings target, from which a
// recommended savings amount and spendable leftover are derived.
type Budget struct {
	UpdatedAt          time.Time
	MonthlyIncome      float64
	SavingsPercent     float64
	RecommendedSavings float64
}

// NewBudget builds a budget from an income and a savings percentage,
// computing the recommended savings amount.
func NewBudget(income, savingsPercent float64) (*Budget, error) {
	b := &Budget{
		MonthlyIncome:      income,
		SavingsPercent:     savingsPercent,
		RecommendedSavings: round2(income * savingsPercent / 100),
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks that the budget is well formed.
func (b *Budget) Validate() error {
	if b.MonthlyIncome < 0 {
		return fmt.Errorf("monthly income cannot be negative, got %.2f", b.MonthlyIncome)
	}
	if b.SavingsPercent < 0 || b.SavingsPercent > 100 {
		return fmt.Errorf("savings percent must be between 0 and 100, got %.2f", b.SavingsPercent)
	}
	if b.RecommendedSavings < 0 {
		return fmt.Errorf("recommended savings cannot be negative, got %.2f", b.RecommendedSavings)
	}
	return nil
}

// Leftover returns what remains of the income after the given total expenses
// and the recommended savings, floored at zero.
func (b *Budget) Leftover(totalExpenses float64) float64 {
	return round2(math.Max(0, b.MonthlyIncome-totalExpenses-b.RecommendedSavings))
}

// Debt represents one outstanding debt tracked for payoff planning.
type Debt struct {
	ID           string
	Name         string
	Balance      float64
	InterestRate float64 // annual percentage rate
	MinPayment   float64
}

// Validate checks that the debt is well formed.
func (d *Debt) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("debt name cannot be empty")
	}
	if d.Balance < 0 {
		return fmt.Errorf("debt balance cannot be negative, got %.2f", d.Balance)
	}
	if d.InterestRate < 0 {
		return fmt.Errorf("debt interest rate cannot be negative, got %.2f", d.InterestRate)
	}
	if d.MinPayment < 0 {
		return fmt.Errorf("debt minimum payment cannot be negative, got %.2f", d.MinPayment)
	}
	return nil
}

// PayoffMethod selects the ordering strategy for a debt payoff plan.
type PayoffMethod string

const (
	// PayoffAvalanche pays highest-interest debts first, minimizing total
	// interest paid.
	PayoffAvalanche PayoffMethod = "avalanche"
	// PayoffSnowball pays smallest balances first, clearing individual debts
	// sooner.
	PayoffSnowball PayoffMethod = "snowball"
)

// ParsePayoffMethod converts a string into a PayoffMethod.
func ParsePayoffMethod(s string) (PayoffMethod, error) {
	switch PayoffMethod(s) {
	case PayoffAvalanche:
		return PayoffAvalanche, nil
	case PayoffSnowball:
		return PayoffSnowball, nil
	}
	return "", fmt.Errorf("unknown payoff method %q (want avalanche or snowball)", s)
}

// PlanPayoff orders debts by the given method without mutating the input.
// Avalanche sorts by interest rate descending; snowball sorts by balance
// ascending. Ties keep their original relative order.
func PlanPayoff(debts []Debt, method PayoffMethod) []Debt {
	ordered := make([]Debt, len(debts))
	copy(ordered, debts)
	switch method {
	case PayoffSnowball:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Balance < ordered[j].Balance
		})
	default:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].InterestRate > ordered[j].InterestRate
		})
	}
	return ordered
}

// SavingsGoal tracks progress toward a named savings target. TargetDate is
// optional; a zero value means the goal has no deadline.
type SavingsGoal struct {
	TargetDate time.Time
	ID         string
	Name       string
	Target     float64
	Saved      float64
}

// Validate checks that the goal is well formed.
func (g *SavingsGoal) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("goal name cannot be empty")
	}
	if g.Target <= 0 {
		return fmt.Errorf("goal target must be positive, got %.2f", g.Target)
	}
	if g.Saved < 0 {
		return fmt.Errorf("goal saved amount cannot be negative, got %.2f", g.Saved)
	}
	return nil
}

// Progress returns how far along the goal is as a percentage, capped at 100.
func (g *SavingsGoal) Progress() float64 {
	if g.Target <= 0 {
		return 0
	}
	return round2(math.Min(100, g.Saved/g.Target*100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
