// Package server exposes the expense parser and storage over an HTTP JSON
// API. Successful responses carry a {"success": true, "data": ...} envelope;
// errors carry {"error": ...} with an appropriate status code.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"kharcha/internal/service"
)

// Server holds the handler dependencies and builds the route table.
type Server struct {
	store  service.Store
	parser service.ExpenseParser
	logger *slog.Logger

	// now supplies the reference date for natural-language parsing. The
	// server boundary is the one place the clock enters the parse path.
	now func() time.Time
}

// New creates a server. A nil logger falls back to the process default.
func New(store service.Store, parser service.ExpenseParser, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:  store,
		parser: parser,
		logger: logger,
		now:    time.Now,
	}
}

// Handler builds the full route table wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/ai/status", s.handleAIStatus)

	mux.HandleFunc("POST /api/expenses/nlp", s.handleParseExpense)
	mux.HandleFunc("GET /api/expenses/suggest-category", s.handleSuggestCategory)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("GET /api/expenses/summary", s.handleExpenseSummary)
	mux.HandleFunc("GET /api/expenses/export", s.handleExportExpenses)
	mux.HandleFunc("DELETE /api/expenses/reset", s.handleResetExpenses)

	mux.HandleFunc("POST /api/budget", s.handleSetBudget)
	mux.HandleFunc("GET /api/budget", s.handleGetBudget)
	mux.HandleFunc("POST /api/debts", s.handleAddDebt)
	mux.HandleFunc("GET /api/debts", s.handleListDebts)
	mux.HandleFunc("GET /api/debts/payoff-plan", s.handlePayoffPlan)
	mux.HandleFunc("POST /api/goals", s.handleAddGoal)
	mux.HandleFunc("GET /api/goals", s.handleListGoals)
	mux.HandleFunc("GET /api/dashboard/stats", s.handleDashboardStats)

	return s.withRecovery(s.withLogging(withCORS(mux)))
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
