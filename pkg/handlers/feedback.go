package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/models"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/services"
)

// FeedbackRequest is the POST /api/feedback body.
type FeedbackRequest struct {
	InteractionID       string `json:"interaction_id"`
	ExplanationNeeded   bool   `json:"explanation_needed"`
	HelpfulnessRating   int    `json:"helpfulness_rating"`
	SatisfactionRating  int    `json:"satisfaction_rating"`
	CognitiveLoadRating int    `json:"cognitive_load_rating"`
}

// FeedbackHandler records participant feedback on explanation decisions.
type FeedbackHandler struct {
	evaluations services.EvaluationService
	logger      *zap.Logger
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(evaluations services.EvaluationService, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{evaluations: evaluations, logger: logger}
}

// RegisterRoutes registers the feedback handler's routes on the given mux.
func (h *FeedbackHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/feedback", h.Submit)
}

// Submit handles POST /api/feedback requests.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	interactionID, err := uuid.Parse(req.InteractionID)
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "bad_request", "interaction_id must be a UUID")
		return
	}

	result, err := h.evaluations.SubmitFeedback(r.Context(), interactionID, &models.Feedback{
		ExplanationNeeded:   req.ExplanationNeeded,
		HelpfulnessRating:   req.HelpfulnessRating,
		SatisfactionRating:  req.SatisfactionRating,
		CognitiveLoadRating: req.CognitiveLoadRating,
		SubmittedAt:         time.Now().UTC(),
	})
	if err != nil {
		h.logger.Warn("feedback rejected",
			zap.String("interaction_id", req.InteractionID), zap.Error(err))
		_ = ServiceErrorResponse(w, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode feedback result", zap.Error(err))
	}
}
