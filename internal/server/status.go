package server

import "net/http"

// handleHealth reports liveness plus the parser's model readiness. The shape
// is flat rather than enveloped so load balancer probes stay trivial.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "healthy",
		"ml_enabled": s.parser.Ready(),
		"currency":   "INR",
		"region":     "India",
	})
}

// handleAIStatus reports which parsing features are available. Natural
// language entry and suggestions always work because the keyword fallback
// never fails; only statistical categorization depends on a trained model.
func (s *Server) handleAIStatus(w http.ResponseWriter, r *http.Request) {
	ready := s.parser.Ready()
	writeData(w, http.StatusOK, map[string]any{
		"ml_enabled": ready,
		"features": map[string]bool{
			"smart_categorization": ready,
			"nlp_expense_entry":    true,
			"auto_suggestions":     true,
		},
	})
}
