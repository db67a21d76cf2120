//go:build e2e

package e2e_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestE2E_LearningSessionFlow walks a complete session: start, answer each
// prompt, advance, and read the completion summary. Status changes are
// verified against the database afterwards.
func TestE2E_LearningSessionFlow(t *testing.T) {
	ts := setupTestServer(t)
	acc := ts.registerUser(t)

	pairs := map[string]string{
		"der Hund":  "el perro",
		"die Katze": "el gato",
	}
	ids := map[string]string{}
	for german, spanish := range pairs {
		ids[german] = ts.createItem(t, acc.AccessToken, german, spanish)
	}

	status, body := ts.doJSON(t, http.MethodPost, "/api/v1/learning/session", acc.AccessToken, nil)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "ACTIVE", body["state"])
	assert.Equal(t, float64(2), body["total"])

	var wrongGerman string
	for i := 0; i < 2; i++ {
		current := body["current"].(map[string]any)
		german := current["german"].(string)
		// The prompt must not reveal the answer.
		_, leaked := current["spanish"]
		require.False(t, leaked)

		answer := pairs[german]
		if i == 1 {
			answer = "definitely wrong"
			wrongGerman = german
		}

		status, attempt := ts.doJSON(t, http.MethodPost, "/api/v1/learning/session/answer",
			acc.AccessToken, map[string]any{"answer": answer})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, i == 0, attempt["correct"])
		assert.Equal(t, pairs[german], attempt["correctAnswer"])

		// Answering twice for the same prompt is rejected.
		status, _ = ts.doJSON(t, http.MethodPost, "/api/v1/learning/session/answer",
			acc.AccessToken, map[string]any{"answer": answer})
		assert.Equal(t, http.StatusConflict, status)

		status, body = ts.doJSON(t, http.MethodPost, "/api/v1/learning/session/advance",
			acc.AccessToken, nil)
		require.Equal(t, http.StatusOK, status)
	}

	assert.Equal(t, "COMPLETED", body["state"])
	wrongAnswers := body["wrongAnswers"].([]any)
	require.Len(t, wrongAnswers, 1)
	missed := wrongAnswers[0].(map[string]any)
	assert.Equal(t, wrongGerman, missed["german"])
	assert.Equal(t, pairs[wrongGerman], missed["spanish"], "summary shows the right translation")

	// The correct answer raised its item from 1 to 2. The wrong one stays
	// at the floor. Persistence is asynchronous, so poll.
	for german, id := range ids {
		if german == wrongGerman {
			assert.Equal(t, 1, ts.itemStatus(t, acc.AccessToken, id))
		} else {
			ts.waitForStatus(t, acc.AccessToken, id, 2)
		}
	}
}

// TestE2E_LearningCooldown verifies that a second correct answer within the
// cool-down window reports tooSoon and leaves the status unchanged.
func TestE2E_LearningCooldown(t *testing.T) {
	ts := setupTestServer(t)
	acc := ts.registerUser(t)
	itemID := ts.createItem(t, acc.AccessToken, "das Brot", "el pan")

	// First session: correct answer, status 1 -> 2.
	status, _ := ts.doJSON(t, http.MethodPost, "/api/v1/learning/session", acc.AccessToken, nil)
	require.Equal(t, http.StatusCreated, status)
	status, attempt := ts.doJSON(t, http.MethodPost, "/api/v1/learning/session/answer",
		acc.AccessToken, map[string]any{"answer": "el pan"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, attempt["tooSoon"])
	ts.waitForStatus(t, acc.AccessToken, itemID, 2)

	ts.doJSON(t, http.MethodDelete, "/api/v1/learning/session", acc.AccessToken, nil)

	// Second session immediately after: correct but too soon.
	status, _ = ts.doJSON(t, http.MethodPost, "/api/v1/learning/session", acc.AccessToken, nil)
	require.Equal(t, http.StatusCreated, status)
	status, attempt = ts.doJSON(t, http.MethodPost, "/api/v1/learning/session/answer",
		acc.AccessToken, map[string]any{"answer": "el pan"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, attempt["correct"])
	assert.Equal(t, true, attempt["tooSoon"])
	assert.Equal(t, float64(2), attempt["newStatus"], "too-soon answers never raise the status")
}

// TestE2E_LearningSessionLifecycle covers the session edge cases: no
// session, empty collection, abandon.
func TestE2E_LearningSessionLifecycle(t *testing.T) {
	ts := setupTestServer(t)
	acc := ts.registerUser(t)

	// No session yet.
	status, _ := ts.doJSON(t, http.MethodGet, "/api/v1/learning/session", acc.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Empty collection yields an EMPTY session.
	status, body := ts.doJSON(t, http.MethodPost, "/api/v1/learning/session", acc.AccessToken, nil)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "EMPTY", body["state"])

	// With items, a session can be started and abandoned.
	ts.createItem(t, acc.AccessToken, "der Baum", "el árbol")
	status, _ = ts.doJSON(t, http.MethodPost, "/api/v1/learning/session", acc.AccessToken, nil)
	require.Equal(t, http.StatusCreated, status)

	status, _ = ts.doJSON(t, http.MethodDelete, "/api/v1/learning/session", acc.AccessToken, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, _ = ts.doJSON(t, http.MethodGet, "/api/v1/learning/session", acc.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
