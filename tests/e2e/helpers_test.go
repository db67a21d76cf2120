//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/vokabel-backend/internal/adapter/postgres"
	reviewlogrepo "github.com/heartmarshall/vokabel-backend/internal/adapter/postgres/reviewlog"
	"github.com/heartmarshall/vokabel-backend/internal/adapter/postgres/testhelper"
	tokenrepo "github.com/heartmarshall/vokabel-backend/internal/adapter/postgres/token"
	userrepo "github.com/heartmarshall/vokabel-backend/internal/adapter/postgres/user"
	vocabularyrepo "github.com/heartmarshall/vokabel-backend/internal/adapter/postgres/vocabulary"
	jwtauth "github.com/heartmarshall/vokabel-backend/internal/auth"
	"github.com/heartmarshall/vokabel-backend/internal/config"
	authsvc "github.com/heartmarshall/vokabel-backend/internal/service/auth"
	learningsvc "github.com/heartmarshall/vokabel-backend/internal/service/learning"
	statssvc "github.com/heartmarshall/vokabel-backend/internal/service/stats"
	vocabularysvc "github.com/heartmarshall/vokabel-backend/internal/service/vocabulary"
	"github.com/heartmarshall/vokabel-backend/internal/transport/middleware"
	"github.com/heartmarshall/vokabel-backend/internal/transport/rest"
)

// testServer wires the full stack against a real PostgreSQL container and
// serves it over httptest.
type testServer struct {
	URL    string
	Client *http.Client
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	items := vocabularyrepo.New(pool)
	reviews := reviewlogrepo.New(pool)
	txm := postgres.NewTxManager(pool)

	authCfg := config.AuthConfig{
		JWTSecret:        "e2e-secret-0123456789abcdef0123456789abcdef",
		JWTIssuer:        "vokabel-e2e",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  720 * time.Hour,
		PasswordHashCost: bcrypt.MinCost,
	}
	jwtManager := jwtauth.NewJWTManager(authCfg.JWTSecret, authCfg.JWTIssuer, authCfg.AccessTokenTTL)

	authService := authsvc.NewService(logger, users, users, tokens, txm, jwtManager, authCfg)
	vocabularyService := vocabularysvc.NewService(logger, items)
	learningService := learningsvc.NewService(logger, items, reviews, learningsvc.Config{
		Cooldown:   12 * time.Hour,
		SessionTTL: time.Hour,
	})
	t.Cleanup(learningService.Close)
	statsService := statssvc.NewService(logger, items, reviews, users, config.StatsConfig{
		StreakWindowDays: 365,
	})

	router := rest.NewRouter(rest.Handlers{
		Auth:       rest.NewAuthHandler(authService, logger),
		Vocabulary: rest.NewVocabularyHandler(vocabularyService, logger),
		Learning:   rest.NewLearningHandler(learningService, logger),
		Stats:      rest.NewStatsHandler(statsService, logger),
		Health:     rest.NewHealthHandler(pool, "e2e"),
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Auth(authService),
	)(router)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &testServer{URL: server.URL, Client: server.Client()}
}

// doJSON sends a request with an optional bearer token and JSON body,
// returning the status code and decoded response body (nil for 204).
func (ts *testServer) doJSON(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.URL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

// account is a registered test user with its tokens.
type account struct {
	Email        string
	AccessToken  string
	RefreshToken string
}

// registerUser creates a fresh user with a unique email and returns its tokens.
func (ts *testServer) registerUser(t *testing.T) account {
	t.Helper()

	email := fmt.Sprintf("e2e-%s@example.com", uuid.New().String()[:8])
	status, body := ts.doJSON(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":    email,
		"username": "testuser",
		"password": "secret-password",
	})
	require.Equal(t, http.StatusCreated, status, "register failed: %v", body)

	return account{
		Email:        email,
		AccessToken:  body["accessToken"].(string),
		RefreshToken: body["refreshToken"].(string),
	}
}

// createItem adds a vocabulary pair for the user and returns its id.
func (ts *testServer) createItem(t *testing.T, token, german, spanish string) string {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/api/v1/vocabulary", token, map[string]any{
		"german":  german,
		"spanish": spanish,
	})
	require.Equal(t, http.StatusCreated, status, "create item failed: %v", body)
	return body["id"].(string)
}

// itemStatus fetches the current mastery status of an item.
func (ts *testServer) itemStatus(t *testing.T, token, itemID string) int {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodGet, "/api/v1/vocabulary/"+itemID, token, nil)
	require.Equal(t, http.StatusOK, status)
	return int(body["status"].(float64))
}

// waitForStatus polls an item until its status reaches want. Review
// persistence is asynchronous, so e2e assertions on status must wait.
func (ts *testServer) waitForStatus(t *testing.T, token, itemID string, want int) {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if ts.itemStatus(t, token, itemID) == want {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("item %s did not reach status %d in time", itemID, want)
}
