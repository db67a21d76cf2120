package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/vokabel-backend/internal/service/learning"
)

// learningService defines the minimal interface needed by LearningHandler.
type learningService interface {
	StartSession(ctx context.Context) (learning.SessionView, error)
	GetSession(ctx context.Context) (learning.SessionView, error)
	SubmitAnswer(ctx context.Context, answer string) (learning.AttemptResult, error)
	Advance(ctx context.Context) (learning.SessionView, error)
	AbandonSession(ctx context.Context) error
}

// LearningHandler serves learning session endpoints.
type LearningHandler struct {
	svc learningService
	log *slog.Logger
}

// NewLearningHandler creates a LearningHandler.
func NewLearningHandler(svc learningService, logger *slog.Logger) *LearningHandler {
	return &LearningHandler{svc: svc, log: logger.With("handler", "learning")}
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type sessionResponse struct {
	State        string          `json:"state"`
	Position     int             `json:"position"`
	Total        int             `json:"total"`
	Current      *promptResponse `json:"current,omitempty"`
	WrongAnswers []itemResponse  `json:"wrongAnswers,omitempty"`
}

// promptResponse deliberately omits the expected translation.
type promptResponse struct {
	ID     string `json:"id"`
	German string `json:"german"`
	Status int    `json:"status"`
}

type attemptResponse struct {
	Correct       bool   `json:"correct"`
	TooSoon       bool   `json:"tooSoon"`
	NewStatus     int    `json:"newStatus"`
	CorrectAnswer string `json:"correctAnswer"`
}

// Start handles POST /learning/session.
func (h *LearningHandler) Start(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.StartSession(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(view))
}

// Get handles GET /learning/session.
func (h *LearningHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.GetSession(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(view))
}

// Answer handles POST /learning/session/answer.
func (h *LearningHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.SubmitAnswer(r.Context(), req.Answer)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, attemptResponse{
		Correct:       result.Correct,
		TooSoon:       result.TooSoon,
		NewStatus:     result.NewStatus,
		CorrectAnswer: result.CorrectAnswer,
	})
}

// Advance handles POST /learning/session/advance.
func (h *LearningHandler) Advance(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Advance(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(view))
}

// Abandon handles DELETE /learning/session.
func (h *LearningHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.AbandonSession(r.Context()); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toSessionResponse(view learning.SessionView) sessionResponse {
	resp := sessionResponse{
		State:    string(view.State),
		Position: view.Position,
		Total:    view.Total,
	}
	if view.Current != nil {
		resp.Current = &promptResponse{
			ID:     view.Current.ID.String(),
			German: view.Current.German,
			Status: view.Current.Status,
		}
	}
	for _, item := range view.WrongAnswers {
		resp.WrongAnswers = append(resp.WrongAnswers, toItemResponse(item))
	}
	return resp
}
