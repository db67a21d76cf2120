package domain

import (
	"time"

	"github.com/google/uuid"
)

// Mastery status ladder bounds. Status 1 is a newly added word,
// status 5 is archived (fully mastered) and excluded from sessions.
const (
	StatusMin      = 1
	StatusArchived = 5
)

// VocabularyItem is a single German/Spanish word pair owned by a user.
type VocabularyItem struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	German       string
	Spanish      string
	Status       int
	LastReviewed *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLearnable reports whether the item is eligible for a learning session.
// Archived items (status 5) are excluded.
func (v *VocabularyItem) IsLearnable() bool {
	return v.Status < StatusArchived
}

// ReviewLog records a single answer attempt against a vocabulary item.
// The status fields capture the ladder position before and after the
// attempt; on a too-soon attempt both are equal.
type ReviewLog struct {
	ID           uuid.UUID
	ItemID       uuid.UUID
	UserID       uuid.UUID
	Correct      bool
	TooSoon      bool
	Answer       string
	StatusBefore int
	StatusAfter  int
	ReviewedAt   time.Time
}

// StatusUpdateParams holds the fields persisted after a review attempt.
// LastReviewed is always set to the attempt time, even when the attempt
// was rejected as too soon; each attempt restarts the cool-down window.
type StatusUpdateParams struct {
	Status       int
	LastReviewed time.Time
}

// VocabularyFilter narrows a vocabulary list query. Zero values mean
// "no filter". Search matches a substring of either side of the word
// pair, case-insensitively.
type VocabularyFilter struct {
	Status *int
	Search string
	Limit  int
	Offset int
}

// DayReviewCount holds the number of reviews on a specific calendar day.
type DayReviewCount struct {
	Date  time.Time
	Count int
}
