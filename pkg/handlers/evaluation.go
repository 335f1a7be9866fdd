package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/services"
)

// EvaluationHandler reports study-wide explanation decision quality.
type EvaluationHandler struct {
	evaluations services.EvaluationService
	logger      *zap.Logger
}

// NewEvaluationHandler creates a new evaluation handler.
func NewEvaluationHandler(evaluations services.EvaluationService, logger *zap.Logger) *EvaluationHandler {
	return &EvaluationHandler{evaluations: evaluations, logger: logger}
}

// RegisterRoutes registers the evaluation handler's routes on the given mux.
func (h *EvaluationHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/evaluation/metrics", h.Metrics)
}

// Metrics handles GET /api/evaluation/metrics requests.
func (h *EvaluationHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.evaluations.Metrics(r.Context())
	if err != nil {
		h.logger.Error("failed to compute evaluation metrics", zap.Error(err))
		_ = ServiceErrorResponse(w, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, metrics); err != nil {
		h.logger.Error("Failed to encode evaluation metrics", zap.Error(err))
	}
}
