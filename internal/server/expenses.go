package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"kharcha/internal/common"
	"kharcha/internal/export"
	"kharcha/internal/model"
)

// expenseResponse is the JSON shape of a stored expense.
type expenseResponse struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
	Merchant      string  `json:"merchant,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	Note          string  `json:"note,omitempty"`
	Confidence    float64 `json:"confidence"`
	Source        string  `json:"source"`
	CreatedAt     string  `json:"created_at"`
}

func toExpenseResponse(e model.Expense) expenseResponse {
	return expenseResponse{
		ID:            e.ID,
		Date:          e.Date.Format("2006-01-02"),
		Amount:        e.Amount,
		Category:      e.Category.String(),
		Merchant:      e.Merchant,
		PaymentMethod: string(e.PaymentMethod),
		Note:          e.Note,
		Confidence:    e.Confidence,
		Source:        string(e.Source),
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
}

// handleParseExpense logs an expense from a natural-language sentence. The
// server clock is the reference date for relative phrases like "yesterday".
func (s *Server) handleParseExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	parsed, err := s.parser.Parse(req.Text, s.now())
	if err != nil {
		if errors.Is(err, common.ErrAmountNotFound) {
			writeError(w, http.StatusBadRequest, "Could not understand. Try: 'spent [amount] on [category]'")
			return
		}
		s.logger.Error("parse failed", "error", err)
		writeError(w, http.StatusBadRequest, "Could not parse expense text")
		return
	}

	expense := model.FromParsed(uuid.NewString(), parsed)
	if err := s.store.SaveExpense(r.Context(), &expense); err != nil {
		s.logger.Error("failed to save parsed expense", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save expense")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    toExpenseResponse(expense),
		"ai_insights": map[string]any{
			"parsed_text":       parsed.RawText,
			"confidence":        parsed.Confidence,
			"detected_category": parsed.Category.String(),
			"detected_merchant": parsed.Merchant,
		},
	})
}

// handleSuggestCategory predicts a category for a partial description while
// the user is still typing. Short or garbled input degrades to the keyword
// fallback, never an error.
func (s *Server) handleSuggestCategory(w http.ResponseWriter, r *http.Request) {
	description := strings.TrimSpace(r.URL.Query().Get("description"))
	if description == "" {
		writeError(w, http.StatusBadRequest, "description query parameter is required")
		return
	}

	category, confidence := s.parser.Suggest(description)
	writeData(w, http.StatusOK, map[string]any{
		"suggested_category": category.String(),
		"confidence":         round2(confidence),
		"description":        fmt.Sprintf("%.0f%% confident this is %s", confidence*100, category),
	})
}

// handleCreateExpense logs an expense from structured form fields.
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount        float64 `json:"amount"`
		Category      string  `json:"category"`
		Merchant      string  `json:"merchant"`
		PaymentMethod string  `json:"payment_method"`
		Date          string  `json:"date"`
		Note          string  `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	category, err := model.ParseCategory(req.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	payment, err := model.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	date := s.now()
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format, want YYYY-MM-DD")
			return
		}
	}

	expense := model.Expense{
		ID:            uuid.NewString(),
		Date:          date,
		Amount:        req.Amount,
		Category:      category,
		Merchant:      req.Merchant,
		PaymentMethod: payment,
		Note:          req.Note,
		Confidence:    1,
		Source:        model.SourceForm,
	}
	if err := s.store.SaveExpense(r.Context(), &expense); err != nil {
		s.logger.Error("failed to save expense", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save expense")
		return
	}

	writeData(w, http.StatusCreated, toExpenseResponse(expense))
}

// handleListExpenses returns stored expenses, newest first.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	expenses, err := s.store.ListExpenses(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list expenses")
		return
	}

	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	writeData(w, http.StatusOK, out)
}

// handleExpenseSummary returns the total spend, a by-category breakdown and
// the record count, optionally bounded by from/to dates.
func (s *Server) handleExpenseSummary(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateParam(r.URL.Query(), "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parseDateParam(r.URL.Query(), "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	total, err := s.store.GetExpenseTotal(ctx, from, to)
	if err != nil {
		s.logger.Error("failed to total expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to summarize expenses")
		return
	}
	summary, err := s.store.GetCategorySummary(ctx, from, to)
	if err != nil {
		s.logger.Error("failed to summarize expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to summarize expenses")
		return
	}
	count, err := s.store.GetExpenseCount(ctx)
	if err != nil {
		s.logger.Error("failed to count expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to summarize expenses")
		return
	}

	byCategory := make(map[string]float64, len(summary))
	for category, categoryTotal := range summary {
		byCategory[category.String()] = round2(categoryTotal)
	}

	writeData(w, http.StatusOK, map[string]any{
		"total_spent": round2(total),
		"by_category": byCategory,
		"count":       count,
	})
}

// handleExportExpenses streams every expense as a CSV download, the same
// format 'kharcha import expenses' reads back.
func (s *Server) handleExportExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.store.ListExpenses(r.Context(), 0)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to export expenses")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)
	w.WriteHeader(http.StatusOK)
	if err := export.Expenses(w, expenses); err != nil {
		s.logger.Error("failed to stream expense export", "error", err)
	}
}

// handleResetExpenses deletes all expenses, or only those dated before the
// optional before_date cutoff.
func (s *Server) handleResetExpenses(w http.ResponseWriter, r *http.Request) {
	before, err := parseDateParam(r.URL.Query(), "before_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	deleted, err := s.store.ResetExpenses(r.Context(), before)
	if err != nil {
		s.logger.Error("failed to reset expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to reset expenses")
		return
	}
	remaining, err := s.store.GetExpenseCount(r.Context())
	if err != nil {
		s.logger.Error("failed to count expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to reset expenses")
		return
	}

	writeMessage(w, http.StatusOK,
		map[string]any{"deleted_count": deleted, "remaining_count": remaining},
		fmt.Sprintf("Deleted %d expense(s). %d remaining.", deleted, remaining),
	)
}

// parseDateParam reads an optional YYYY-MM-DD query parameter.
func parseDateParam(query url.Values, key string) (*time.Time, error) {
	v := query.Get(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s, want YYYY-MM-DD", key)
	}
	return &t, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
