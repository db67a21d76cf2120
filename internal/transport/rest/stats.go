package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/vokabel-backend/internal/domain"
)

// statsService defines the minimal interface needed by StatsHandler.
type statsService interface {
	GetDashboard(ctx context.Context) (domain.Dashboard, error)
	SetDailyGoal(ctx context.Context, goal int) (*domain.UserSettings, error)
}

// StatsHandler serves statistics endpoints.
type StatsHandler struct {
	svc statsService
	log *slog.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(svc statsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: logger.With("handler", "stats")}
}

type dashboardResponse struct {
	DailyProgress  int            `json:"dailyProgress"`
	DailyGoal      int            `json:"dailyGoal"`
	Streak         int            `json:"streak"`
	TotalItems     int            `json:"totalItems"`
	LearnableCount int            `json:"learnableCount"`
	ArchivedCount  int            `json:"archivedCount"`
	StatusCounts   map[string]int `json:"statusCounts"`
}

type dailyGoalRequest struct {
	DailyGoal int `json:"dailyGoal"`
}

type settingsResponse struct {
	DailyGoal int    `json:"dailyGoal"`
	Timezone  string `json:"timezone"`
}

// Dashboard handles GET /stats/dashboard.
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.GetDashboard(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	counts := make(map[string]int, len(dash.StatusCounts))
	for status, n := range dash.StatusCounts {
		counts[strconv.Itoa(status)] = n
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		DailyProgress:  dash.DailyProgress,
		DailyGoal:      dash.DailyGoal,
		Streak:         dash.Streak,
		TotalItems:     dash.TotalItems,
		LearnableCount: dash.LearnableCount,
		ArchivedCount:  dash.ArchivedCount,
		StatusCounts:   counts,
	})
}

// SetDailyGoal handles PUT /stats/daily-goal.
func (h *StatsHandler) SetDailyGoal(w http.ResponseWriter, r *http.Request) {
	var req dailyGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.svc.SetDailyGoal(r.Context(), req.DailyGoal)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, settingsResponse{
		DailyGoal: settings.DailyGoal,
		Timezone:  settings.Timezone,
	})
}
