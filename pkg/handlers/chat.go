package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/models"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/services"
)

// ChatRequest is the POST /api/chat body.
type ChatRequest struct {
	UserID   string `json:"user_id"`
	Question string `json:"question"`
}

// ChatResponse is the chat turn outcome returned to the UI.
type ChatResponse struct {
	InteractionID       string                     `json:"interaction_id"`
	Success             bool                       `json:"success"`
	Columns             []string                   `json:"columns,omitempty"`
	Rows                []map[string]any           `json:"rows,omitempty"`
	SQL                 string                     `json:"sql"`
	ErrorMessage        string                     `json:"error_message,omitempty"`
	ExecutionTimeMs     int64                      `json:"execution_time_ms"`
	Explanation         *models.ExplanationContent `json:"explanation,omitempty"`
	PerceivedComplexity int                        `json:"perceived_complexity"`

	// Debug is included only when the request carries ?debug=1.
	Debug *ChatDebug `json:"debug,omitempty"`
}

// ChatDebug exposes the decision internals for study diagnostics.
type ChatDebug struct {
	Assessment *models.CognitiveAssessment `json:"assessment"`
	Profile    *models.UserProfile         `json:"profile"`
}

// ChatHandler handles the natural language chat endpoint.
type ChatHandler struct {
	assistant services.AssistantService
	logger    *zap.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(assistant services.AssistantService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{assistant: assistant, logger: logger}
}

// RegisterRoutes registers the chat handler's routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/chat", h.Chat)
}

// Chat handles POST /api/chat requests.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	req.UserID = strings.TrimSpace(req.UserID)
	req.Question = strings.TrimSpace(req.Question)
	if req.UserID == "" || req.Question == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "bad_request", "user_id and question are required")
		return
	}

	result, err := h.assistant.Ask(r.Context(), req.UserID, req.Question)
	if err != nil {
		h.logger.Error("chat turn failed", zap.String("user_id", req.UserID), zap.Error(err))
		_ = ServiceErrorResponse(w, err)
		return
	}

	response := ChatResponse{
		InteractionID:       result.InteractionID.String(),
		Success:             result.Result.Success,
		Columns:             result.Result.Columns,
		Rows:                result.Result.Rows,
		SQL:                 result.Result.SQL,
		ErrorMessage:        result.Result.ErrorMessage,
		ExecutionTimeMs:     result.Result.ExecutionTime.Milliseconds(),
		Explanation:         result.Explanation,
		PerceivedComplexity: result.PerceivedComplexity,
	}
	if r.URL.Query().Get("debug") == "1" {
		response.Debug = &ChatDebug{
			Assessment: result.Assessment,
			Profile:    result.Profile,
		}
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode chat response", zap.Error(err))
	}
}
