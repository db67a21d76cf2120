package learning

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/vokabel-backend/internal/domain"
)

// State identifies the lifecycle phase of a learning session.
//
// EMPTY and COMPLETED are both terminal but mean different things:
// EMPTY says no material existed at session start, COMPLETED says
// material existed and was exhausted.
type State string

const (
	StateEmpty     State = "EMPTY"
	StateActive    State = "ACTIVE"
	StateCompleted State = "COMPLETED"
)

// Session walks a fixed queue of vocabulary items from start to completion.
// It lives in memory only and is owned by a single interactive flow; the
// session store serializes access to it. Abandoning a session simply
// discards it; there is nothing persisted to roll back.
type Session struct {
	userID       uuid.UUID
	queue        []domain.VocabularyItem
	cursor       int
	wrongAnswers []domain.VocabularyItem
	answered     bool
	state        State
	touchedAt    time.Time
}

func newSession(userID uuid.UUID, queue []domain.VocabularyItem, now time.Time) *Session {
	s := &Session{
		userID:    userID,
		queue:     queue,
		state:     StateActive,
		touchedAt: now,
	}
	if len(queue) == 0 {
		s.state = StateEmpty
	}
	return s
}

// State returns the current lifecycle phase.
func (s *Session) State() State { return s.state }

// Position returns the zero-based cursor into the queue.
func (s *Session) Position() int { return s.cursor }

// Total returns the number of items the session presents.
func (s *Session) Total() int { return len(s.queue) }

// Current returns the item at the cursor. The second return value is
// false when the session is not active.
func (s *Session) Current() (domain.VocabularyItem, bool) {
	if s.state != StateActive {
		return domain.VocabularyItem{}, false
	}
	return s.queue[s.cursor], true
}

// WrongAnswers returns the items answered incorrectly so far, as
// pre-update snapshots for displaying the expected answer.
func (s *Session) WrongAnswers() []domain.VocabularyItem {
	return s.wrongAnswers
}

// markAnswered flags the current step as answered. Returns false if the
// step was already answered. It guards a double submit while feedback is
// on screen.
func (s *Session) markAnswered() bool {
	if s.answered {
		return false
	}
	s.answered = true
	return true
}

// recordWrong appends the item's pre-update snapshot to the mistake list.
func (s *Session) recordWrong(item domain.VocabularyItem) {
	s.wrongAnswers = append(s.wrongAnswers, item)
}

// advance moves the cursor to the next step and returns the resulting
// state. Past the last element the session completes.
func (s *Session) advance() State {
	s.cursor++
	s.answered = false
	if s.cursor >= len(s.queue) {
		s.state = StateCompleted
	}
	return s.state
}
