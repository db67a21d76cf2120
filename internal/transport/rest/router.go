package rest

import "net/http"

// Handlers bundles all REST handlers for router registration.
type Handlers struct {
	Auth       *AuthHandler
	Vocabulary *VocabularyHandler
	Learning   *LearningHandler
	Stats      *StatsHandler
	Health     *HealthHandler
}

// NewRouter registers all routes on a fresh ServeMux. Authentication and
// other cross-cutting concerns are applied by middleware around the mux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	mux.HandleFunc("POST /api/v1/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", h.Auth.Logout)

	mux.HandleFunc("POST /api/v1/vocabulary", h.Vocabulary.Create)
	mux.HandleFunc("GET /api/v1/vocabulary", h.Vocabulary.List)
	mux.HandleFunc("GET /api/v1/vocabulary/{id}", h.Vocabulary.Get)
	mux.HandleFunc("PUT /api/v1/vocabulary/{id}", h.Vocabulary.Update)
	mux.HandleFunc("DELETE /api/v1/vocabulary/{id}", h.Vocabulary.Delete)

	mux.HandleFunc("POST /api/v1/learning/session", h.Learning.Start)
	mux.HandleFunc("GET /api/v1/learning/session", h.Learning.Get)
	mux.HandleFunc("DELETE /api/v1/learning/session", h.Learning.Abandon)
	mux.HandleFunc("POST /api/v1/learning/session/answer", h.Learning.Answer)
	mux.HandleFunc("POST /api/v1/learning/session/advance", h.Learning.Advance)

	mux.HandleFunc("GET /api/v1/stats/dashboard", h.Stats.Dashboard)
	mux.HandleFunc("PUT /api/v1/stats/daily-goal", h.Stats.SetDailyGoal)

	return mux
}
