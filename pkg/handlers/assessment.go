package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/services"
)

// AssessmentRequest is the POST /api/assessment body.
type AssessmentRequest struct {
	UserID string `json:"user_id"`
	services.AssessmentSubmission
}

// AssessmentHandler serves the onboarding questionnaire and scores
// submissions.
type AssessmentHandler struct {
	assessments services.AssessmentService
	logger      *zap.Logger
}

// NewAssessmentHandler creates a new assessment handler.
func NewAssessmentHandler(assessments services.AssessmentService, logger *zap.Logger) *AssessmentHandler {
	return &AssessmentHandler{assessments: assessments, logger: logger}
}

// RegisterRoutes registers the assessment handler's routes on the given mux.
func (h *AssessmentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/assessment/questionnaire", h.Questionnaire)
	mux.HandleFunc("POST /api/assessment", h.Submit)
}

// Questionnaire handles GET /api/assessment/questionnaire requests.
func (h *AssessmentHandler) Questionnaire(w http.ResponseWriter, r *http.Request) {
	if err := WriteJSON(w, http.StatusOK, h.assessments.Questionnaire()); err != nil {
		h.logger.Error("Failed to encode questionnaire", zap.Error(err))
	}
}

// Submit handles POST /api/assessment requests.
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req AssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	req.UserID = strings.TrimSpace(req.UserID)

	result, err := h.assessments.Complete(r.Context(), req.UserID, &req.AssessmentSubmission)
	if err != nil {
		h.logger.Warn("assessment submission rejected",
			zap.String("user_id", req.UserID), zap.Error(err))
		_ = ServiceErrorResponse(w, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode assessment result", zap.Error(err))
	}
}
