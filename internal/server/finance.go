package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"kharcha/internal/common"
	"kharcha/internal/model"
)

type budgetResponse struct {
	Income             float64 `json:"income"`
	Expenses           float64 `json:"expenses"`
	SavingsPercent     float64 `json:"savings_percent"`
	RecommendedSavings float64 `json:"recommended_savings"`
	Leftover           float64 `json:"leftover"`
	UpdatedAt          string  `json:"updated_at,omitempty"`
}

func (s *Server) toBudgetResponse(r *http.Request, budget *model.Budget) (budgetResponse, error) {
	total, err := s.store.GetExpenseTotal(r.Context(), nil, nil)
	if err != nil {
		return budgetResponse{}, err
	}
	resp := budgetResponse{
		Income:             budget.MonthlyIncome,
		Expenses:           round2(total),
		SavingsPercent:     budget.SavingsPercent,
		RecommendedSavings: budget.RecommendedSavings,
		Leftover:           budget.Leftover(total),
	}
	if !budget.UpdatedAt.IsZero() {
		resp.UpdatedAt = budget.UpdatedAt.Format(time.RFC3339)
	}
	return resp, nil
}

// handleSetBudget creates or replaces the budget. savings_percentage is a
// fraction between 0 and 1, defaulting to 0.10.
func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Income            float64  `json:"income"`
		SavingsPercentage *float64 `json:"savings_percentage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Income <= 0 {
		writeError(w, http.StatusBadRequest, "income must be positive")
		return
	}
	fraction := 0.10
	if req.SavingsPercentage != nil {
		fraction = *req.SavingsPercentage
	}
	if fraction < 0 || fraction > 1 {
		writeError(w, http.StatusBadRequest, "savings_percentage must be between 0 and 1")
		return
	}

	budget, err := model.NewBudget(req.Income, round2(fraction*100))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.SaveBudget(r.Context(), budget); err != nil {
		s.logger.Error("failed to save budget", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save budget")
		return
	}

	resp, err := s.toBudgetResponse(r, budget)
	if err != nil {
		s.logger.Error("failed to total expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save budget")
		return
	}
	writeData(w, http.StatusOK, resp)
}

// handleGetBudget returns the current budget, or null data when none is set.
func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	budget, err := s.store.GetBudget(r.Context())
	if errors.Is(err, common.ErrNotFound) {
		writeData(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		s.logger.Error("failed to get budget", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get budget")
		return
	}

	resp, err := s.toBudgetResponse(r, budget)
	if err != nil {
		s.logger.Error("failed to total expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get budget")
		return
	}
	writeData(w, http.StatusOK, resp)
}

type debtResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Balance        float64 `json:"balance"`
	InterestRate   float64 `json:"interest_rate"`
	MinimumPayment float64 `json:"minimum_payment"`
}

func toDebtResponse(d model.Debt) debtResponse {
	return debtResponse{
		ID:             d.ID,
		Name:           d.Name,
		Balance:        d.Balance,
		InterestRate:   d.InterestRate,
		MinimumPayment: d.MinPayment,
	}
}

// handleAddDebt adds or updates a debt. Debts are keyed by name at the API
// boundary, so re-posting a name updates that debt instead of duplicating it.
func (s *Server) handleAddDebt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string  `json:"name"`
		Balance        float64 `json:"balance"`
		InterestRate   float64 `json:"interest_rate"`
		MinimumPayment float64 `json:"minimum_payment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	debt := model.Debt{
		Name:         strings.TrimSpace(req.Name),
		Balance:      req.Balance,
		InterestRate: req.InterestRate,
		MinPayment:   req.MinimumPayment,
	}
	if err := debt.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := s.store.ListDebts(r.Context())
	if err != nil {
		s.logger.Error("failed to list debts", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save debt")
		return
	}
	for _, d := range existing {
		if strings.EqualFold(d.Name, debt.Name) {
			debt.ID = d.ID
			break
		}
	}
	if debt.ID == "" {
		debt.ID = uuid.NewString()
	}

	if err := s.store.SaveDebt(r.Context(), &debt); err != nil {
		s.logger.Error("failed to save debt", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save debt")
		return
	}

	debts, err := s.store.ListDebts(r.Context())
	if err != nil {
		s.logger.Error("failed to list debts", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save debt")
		return
	}
	var totalDebt float64
	for _, d := range debts {
		totalDebt += d.Balance
	}

	writeData(w, http.StatusOK, map[string]float64{"total_debt": round2(totalDebt)})
}

// handleListDebts returns all tracked debts.
func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := s.store.ListDebts(r.Context())
	if err != nil {
		s.logger.Error("failed to list debts", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list debts")
		return
	}

	out := make([]debtResponse, 0, len(debts))
	for _, d := range debts {
		out = append(out, toDebtResponse(d))
	}
	writeData(w, http.StatusOK, out)
}

// handlePayoffPlan returns ordered payoff steps. Avalanche pays the highest
// interest rate first; snowball pays the smallest balance first.
func (s *Server) handlePayoffPlan(w http.ResponseWriter, r *http.Request) {
	methodParam := r.URL.Query().Get("method")
	if methodParam == "" {
		methodParam = string(model.PayoffAvalanche)
	}
	method, err := model.ParsePayoffMethod(methodParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	debts, err := s.store.ListDebts(r.Context())
	if err != nil {
		s.logger.Error("failed to list debts", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to build payoff plan")
		return
	}
	if len(debts) == 0 {
		writeData(w, http.StatusOK, []string{"No debts recorded."})
		return
	}

	ordered := model.PlanPayoff(debts, method)
	steps := make([]string, 0, len(ordered))
	for _, d := range ordered {
		steps = append(steps, fmt.Sprintf("Pay off %s: ₹%.2f at %g%% (min ₹%.2f/mo)",
			d.Name, d.Balance, d.InterestRate, d.MinPayment))
	}
	writeData(w, http.StatusOK, steps)
}

type goalResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Target     float64 `json:"target"`
	Saved      float64 `json:"saved"`
	Progress   float64 `json:"progress"`
	TargetDate string  `json:"target_date,omitempty"`
}

func toGoalResponse(g model.SavingsGoal) goalResponse {
	resp := goalResponse{
		ID:       g.ID,
		Name:     g.Name,
		Target:   g.Target,
		Saved:    g.Saved,
		Progress: g.Progress(),
	}
	if !g.TargetDate.IsZero() {
		resp.TargetDate = g.TargetDate.Format("2006-01-02")
	}
	return resp
}

// handleAddGoal creates or updates a savings goal. Goals are keyed by name;
// updating one keeps its accumulated savings.
func (s *Server) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string  `json:"name"`
		Amount     float64 `json:"amount"`
		TargetDate string  `json:"target_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal := model.SavingsGoal{
		Name:   strings.TrimSpace(req.Name),
		Target: req.Amount,
	}
	if req.TargetDate != "" {
		t, err := time.Parse("2006-01-02", req.TargetDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid target_date format, want YYYY-MM-DD")
			return
		}
		goal.TargetDate = t
	}
	if err := goal.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := s.store.ListGoals(r.Context())
	if err != nil {
		s.logger.Error("failed to list goals", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save goal")
		return
	}
	for _, g := range existing {
		if strings.EqualFold(g.Name, goal.Name) {
			goal.ID = g.ID
			goal.Saved = g.Saved
			break
		}
	}
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}

	if err := s.store.SaveGoal(r.Context(), &goal); err != nil {
		s.logger.Error("failed to save goal", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save goal")
		return
	}

	writeData(w, http.StatusOK, toGoalResponse(goal))
}

// handleListGoals returns all savings goals.
func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.store.ListGoals(r.Context())
	if err != nil {
		s.logger.Error("failed to list goals", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list goals")
		return
	}

	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalResponse(g))
	}
	writeData(w, http.StatusOK, out)
}

// handleDashboardStats aggregates the numbers the dashboard needs in one
// round trip.
func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	total, err := s.store.GetExpenseTotal(ctx, nil, nil)
	if err != nil {
		s.logger.Error("failed to total expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load dashboard stats")
		return
	}
	count, err := s.store.GetExpenseCount(ctx)
	if err != nil {
		s.logger.Error("failed to count expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load dashboard stats")
		return
	}
	debts, err := s.store.ListDebts(ctx)
	if err != nil {
		s.logger.Error("failed to list debts", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load dashboard stats")
		return
	}
	goals, err := s.store.ListGoals(ctx)
	if err != nil {
		s.logger.Error("failed to list goals", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load dashboard stats")
		return
	}

	var totalDebt float64
	for _, d := range debts {
		totalDebt += d.Balance
	}
	var totalGoals float64
	for _, g := range goals {
		totalGoals += g.Target
	}

	var budgetData any
	budget, err := s.store.GetBudget(ctx)
	switch {
	case errors.Is(err, common.ErrNotFound):
		budgetData = nil
	case err != nil:
		s.logger.Error("failed to get budget", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load dashboard stats")
		return
	default:
		resp, err := s.toBudgetResponse(r, budget)
		if err != nil {
			s.logger.Error("failed to total expenses", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to load dashboard stats")
			return
		}
		budgetData = resp
	}

	writeData(w, http.StatusOK, map[string]any{
		"total_spent":   round2(total),
		"expense_count": count,
		"total_debt":    round2(totalDebt),
		"debt_count":    len(debts),
		"total_goals":   round2(totalGoals),
		"goal_count":    len(goals),
		"budget":        budgetData,
	})
}
