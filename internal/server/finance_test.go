package server

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestBudgetEndpoints(t *testing.T) {
	srv := newTestServer(t)

	// No budget yet: data is null, not an error.
	rec := doJSON(t, srv, http.MethodGet, "/api/budget", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	env := decodeEnvelope(t, rec)
	if string(env.Data) != "null" {
		t.Errorf("data = %s, want null before a budget is set", env.Data)
	}

	seedExpense(t, srv, 2000, "Housing", "2025-12-01")

	rec = doJSON(t, srv, http.MethodPost, "/api/budget", map[string]any{
		"income":             4000,
		"savings_percentage": 0.10,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var data budgetResponse
	decodeData(t, rec, &data)
	if data.Income != 4000 {
		t.Errorf("income = %v, want 4000", data.Income)
	}
	if data.SavingsPercent != 10 {
		t.Errorf("savings_percent = %v, want 10", data.SavingsPercent)
	}
	if data.RecommendedSavings != 400 {
		t.Errorf("recommended_savings = %v, want 400", data.RecommendedSavings)
	}
	if data.Expenses != 2000 {
		t.Errorf("expenses = %v, want 2000", data.Expenses)
	}
	if data.Leftover != 1600 {
		t.Errorf("leftover = %v, want 4000-2000-400", data.Leftover)
	}

	// Reading it back reflects the stored budget.
	rec = doJSON(t, srv, http.MethodGet, "/api/budget", nil)
	decodeData(t, rec, &data)
	if data.Income != 4000 || data.RecommendedSavings != 400 {
		t.Errorf("round trip = %+v, want income 4000 and recommended 400", data)
	}
	if data.UpdatedAt == "" {
		t.Error("updated_at missing after save")
	}
}

func TestSetBudgetDefaultsToTenPercent(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/budget", map[string]any{"income": 50000})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var data budgetResponse
	decodeData(t, rec, &data)
	if data.RecommendedSavings != 5000 {
		t.Errorf("recommended_savings = %v, want 5000 at the default 10%%", data.RecommendedSavings)
	}
}

func TestSetBudgetValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "zero income", body: map[string]any{"income": 0}},
		{name: "negative income", body: map[string]any{"income": -100}},
		{name: "fraction above one", body: map[string]any{"income": 1000, "savings_percentage": 1.5}},
		{name: "negative fraction", body: map[string]any{"income": 1000, "savings_percentage": -0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/budget", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestDebtEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/debts", map[string]any{
		"name":            "Credit Card",
		"balance":         40000,
		"interest_rate":   36,
		"minimum_payment": 2000,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var total struct {
		TotalDebt float64 `json:"total_debt"`
	}
	decodeData(t, rec, &total)
	if total.TotalDebt != 40000 {
		t.Errorf("total_debt = %v, want 40000", total.TotalDebt)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/debts", map[string]any{
		"name":            "Car Loan",
		"balance":         300000,
		"interest_rate":   9.5,
		"minimum_payment": 8000,
	})
	decodeData(t, rec, &total)
	if total.TotalDebt != 340000 {
		t.Errorf("total_debt = %v, want 340000", total.TotalDebt)
	}

	// Re-posting a name updates the debt instead of duplicating it, case
	// insensitively.
	rec = doJSON(t, srv, http.MethodPost, "/api/debts", map[string]any{
		"name":            "credit card",
		"balance":         35000,
		"interest_rate":   36,
		"minimum_payment": 2000,
	})
	decodeData(t, rec, &total)
	if total.TotalDebt != 335000 {
		t.Errorf("total_debt after update = %v, want 335000", total.TotalDebt)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/debts", nil)
	var debts []debtResponse
	decodeData(t, rec, &debts)
	if len(debts) != 2 {
		t.Fatalf("debt count = %d, want 2 after the upsert", len(debts))
	}
}

func TestDebtValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "empty name", body: map[string]any{"name": "  ", "balance": 100}},
		{name: "negative balance", body: map[string]any{"name": "Loan", "balance": -100}},
		{name: "negative rate", body: map[string]any{"name": "Loan", "balance": 100, "interest_rate": -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/debts", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestPayoffPlanEndpoint(t *testing.T) {
	srv := newTestServer(t)

	// Empty plan is a friendly message, not an error.
	rec := doJSON(t, srv, http.MethodGet, "/api/debts/payoff-plan", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var steps []string
	decodeData(t, rec, &steps)
	if len(steps) != 1 || steps[0] != "No debts recorded." {
		t.Errorf("steps = %v, want the no-debts message", steps)
	}

	seedDebt(t, srv, "Credit Card", 60000, 36, 2000)
	seedDebt(t, srv, "Car Loan", 300000, 9.5, 8000)
	seedDebt(t, srv, "Personal Loan", 50000, 12, 3000)

	// Default method is avalanche: highest interest rate first.
	rec = doJSON(t, srv, http.MethodGet, "/api/debts/payoff-plan", nil)
	decodeData(t, rec, &steps)
	if len(steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(steps))
	}
	wantOrder := []string{"Credit Card", "Personal Loan", "Car Loan"}
	for i, name := range wantOrder {
		if !strings.Contains(steps[i], name) {
			t.Errorf("avalanche step %d = %q, want %q first", i, steps[i], name)
		}
	}
	if !strings.Contains(steps[0], "₹60000.00 at 36%") {
		t.Errorf("step = %q, want balance and rate formatted", steps[0])
	}

	// Snowball: smallest balance first.
	rec = doJSON(t, srv, http.MethodGet, "/api/debts/payoff-plan?method=snowball", nil)
	decodeData(t, rec, &steps)
	wantOrder = []string{"Personal Loan", "Credit Card", "Car Loan"}
	for i, name := range wantOrder {
		if !strings.Contains(steps[i], name) {
			t.Errorf("snowball step %d = %q, want %q first", i, steps[i], name)
		}
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/debts/payoff-plan?method=linear", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown method status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGoalEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/goals", map[string]any{
		"name":        "Emergency Fund",
		"amount":      100000,
		"target_date": "2026-06-30",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var goal goalResponse
	decodeData(t, rec, &goal)
	if goal.ID == "" {
		t.Error("goal ID is empty")
	}
	if goal.Target != 100000 || goal.Saved != 0 || goal.Progress != 0 {
		t.Errorf("goal = %+v, want fresh goal with zero progress", goal)
	}
	if goal.TargetDate != "2026-06-30" {
		t.Errorf("target_date = %q, want 2026-06-30", goal.TargetDate)
	}

	// Record some savings directly, then update the target through the API.
	// The accumulated amount must survive the update.
	if err := srv.store.AddToGoal(context.Background(), goal.ID, 25000); err != nil {
		t.Fatalf("AddToGoal() error = %v", err)
	}
	rec = doJSON(t, srv, http.MethodPost, "/api/goals", map[string]any{
		"name":   "emergency fund",
		"amount": 125000,
	})
	decodeData(t, rec, &goal)
	if goal.Target != 125000 {
		t.Errorf("target = %v, want 125000", goal.Target)
	}
	if goal.Saved != 25000 {
		t.Errorf("saved = %v, want 25000 preserved across the update", goal.Saved)
	}
	if goal.Progress != 20 {
		t.Errorf("progress = %v, want 20", goal.Progress)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/goals", nil)
	var goals []goalResponse
	decodeData(t, rec, &goals)
	if len(goals) != 1 {
		t.Fatalf("goal count = %d, want 1 after the upsert", len(goals))
	}
}

func TestGoalValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "zero amount", body: map[string]any{"name": "Trip", "amount": 0}},
		{name: "empty name", body: map[string]any{"name": " ", "amount": 1000}},
		{name: "bad target date", body: map[string]any{"name": "Trip", "amount": 1000, "target_date": "June 2026"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/goals", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestDashboardStatsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/dashboard/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var data struct {
		TotalSpent   float64 `json:"total_spent"`
		ExpenseCount int     `json:"expense_count"`
		TotalDebt    float64 `json:"total_debt"`
		DebtCount    int     `json:"debt_count"`
		TotalGoals   float64 `json:"total_goals"`
		GoalCount    int     `json:"goal_count"`
		Budget       *budgetResponse
	}
	decodeData(t, rec, &data)
	if data.ExpenseCount != 0 || data.DebtCount != 0 || data.GoalCount != 0 {
		t.Errorf("fresh stats = %+v, want all zero", data)
	}
	if data.Budget != nil {
		t.Errorf("budget = %+v, want null before one is set", data.Budget)
	}

	seedExpense(t, srv, 500, "Groceries", "2025-12-10")
	seedExpense(t, srv, 1200, "Dining", "2025-12-18")
	seedDebt(t, srv, "Credit Card", 40000, 36, 2000)
	doJSON(t, srv, http.MethodPost, "/api/goals", map[string]any{"name": "Emergency Fund", "amount": 100000})
	doJSON(t, srv, http.MethodPost, "/api/budget", map[string]any{"income": 50000})

	rec = doJSON(t, srv, http.MethodGet, "/api/dashboard/stats", nil)
	decodeData(t, rec, &data)
	if data.TotalSpent != 1700 {
		t.Errorf("total_spent = %v, want 1700", data.TotalSpent)
	}
	if data.ExpenseCount != 2 {
		t.Errorf("expense_count = %d, want 2", data.ExpenseCount)
	}
	if data.TotalDebt != 40000 || data.DebtCount != 1 {
		t.Errorf("debt stats = (%v, %d), want (40000, 1)", data.TotalDebt, data.DebtCount)
	}
	if data.TotalGoals != 100000 || data.GoalCount != 1 {
		t.Errorf("goal stats = (%v, %d), want (100000, 1)", data.TotalGoals, data.GoalCount)
	}
	if data.Budget == nil || data.Budget.Income != 50000 {
		t.Errorf("budget = %+v, want income 50000", data.Budget)
	}
}

// seedDebt stores one debt through the API.
func seedDebt(t *testing.T, srv *Server, name string, balance, rate, minimum float64) {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/debts", map[string]any{
		"name":            name,
		"balance":         balance,
		"interest_rate":   rate,
		"minimum_payment": minimum,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("failed to seed debt: status %d, body %s", rec.Code, rec.Body.String())
	}
}
