package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/vokabel-backend/internal/domain"
	"github.com/heartmarshall/vokabel-backend/internal/service/vocabulary"
)

// vocabularyService defines the minimal interface needed by VocabularyHandler.
type vocabularyService interface {
	Create(ctx context.Context, input vocabulary.CreateInput) (domain.VocabularyItem, error)
	Get(ctx context.Context, itemID uuid.UUID) (domain.VocabularyItem, error)
	List(ctx context.Context, input vocabulary.ListInput) ([]domain.VocabularyItem, error)
	Update(ctx context.Context, input vocabulary.UpdateInput) (domain.VocabularyItem, error)
	Delete(ctx context.Context, itemID uuid.UUID) error
}

// VocabularyHandler serves vocabulary CRUD endpoints.
type VocabularyHandler struct {
	svc vocabularyService
	log *slog.Logger
}

// NewVocabularyHandler creates a VocabularyHandler.
func NewVocabularyHandler(svc vocabularyService, logger *slog.Logger) *VocabularyHandler {
	return &VocabularyHandler{svc: svc, log: logger.With("handler", "vocabulary")}
}

type itemRequest struct {
	German  string `json:"german"`
	Spanish string `json:"spanish"`
}

type itemResponse struct {
	ID           string     `json:"id"`
	German       string     `json:"german"`
	Spanish      string     `json:"spanish"`
	Status       int        `json:"status"`
	LastReviewed *time.Time `json:"lastReviewed,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type itemListResponse struct {
	Items []itemResponse `json:"items"`
}

// Create handles POST /vocabulary.
func (h *VocabularyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.Create(r.Context(), vocabulary.CreateInput{
		German:  req.German,
		Spanish: req.Spanish,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(item))
}

// Get handles GET /vocabulary/{id}.
func (h *VocabularyHandler) Get(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.svc.Get(r.Context(), itemID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

// List handles GET /vocabulary with optional status, search, limit, and
// offset query parameters.
func (h *VocabularyHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := parseListInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := itemListResponse{Items: make([]itemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, toItemResponse(item))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Update handles PUT /vocabulary/{id}.
func (h *VocabularyHandler) Update(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.Update(r.Context(), vocabulary.UpdateInput{
		ItemID:  itemID,
		German:  req.German,
		Spanish: req.Spanish,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

// Delete handles DELETE /vocabulary/{id}.
func (h *VocabularyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.svc.Delete(r.Context(), itemID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseListInput(r *http.Request) (vocabulary.ListInput, error) {
	q := r.URL.Query()
	input := vocabulary.ListInput{Search: q.Get("search")}

	if v := q.Get("status"); v != "" {
		status, err := strconv.Atoi(v)
		if err != nil {
			return input, domain.NewValidationError("status", "must be an integer")
		}
		input.Status = &status
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return input, domain.NewValidationError("limit", "must be an integer")
		}
		input.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return input, domain.NewValidationError("offset", "must be an integer")
		}
		input.Offset = offset
	}
	return input, nil
}

func toItemResponse(item domain.VocabularyItem) itemResponse {
	return itemResponse{
		ID:           item.ID.String(),
		German:       item.German,
		Spanish:      item.Spanish,
		Status:       item.Status,
		LastReviewed: item.LastReviewed,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}
