package learning

import (
	"time"

	"github.com/heartmarshall/vokabel-backend/internal/domain"
)

// EvaluateInput holds all data needed to score one answer attempt.
// Pure value, no side effects.
type EvaluateInput struct {
	Status       int
	LastReviewed *time.Time
	Expected     string
	Submitted    string
	Now          time.Time
	Cooldown     time.Duration
}

// EvaluateResult is the outcome of one answer attempt. TooSoon means the
// answer was correct but arrived inside the cool-down window, so the
// status stays unchanged.
type EvaluateResult struct {
	Correct   bool
	TooSoon   bool
	NewStatus int
}

// EvaluateAttempt is a pure function. No DB, no context, no logger.
// Time is a parameter, so the result is deterministic for fixed inputs.
//
// A correct answer moves the status one step up (capped at 5) unless the
// item was reviewed less than the cool-down ago, in which case the status stays
// put and TooSoon is set. The first-ever review of an item always counts.
// A wrong answer moves the status one step down (floored at 1) regardless
// of elapsed time. An empty submission is never correct.
func EvaluateAttempt(input EvaluateInput) EvaluateResult {
	submitted := domain.NormalizeAnswer(input.Submitted)
	correct := submitted != "" && submitted == domain.NormalizeAnswer(input.Expected)

	if !correct {
		return EvaluateResult{
			NewStatus: max(domain.StatusMin, input.Status-1),
		}
	}

	if input.LastReviewed != nil && input.Now.Sub(*input.LastReviewed) < input.Cooldown {
		return EvaluateResult{
			Correct:   true,
			TooSoon:   true,
			NewStatus: input.Status,
		}
	}

	return EvaluateResult{
		Correct:   true,
		NewStatus: min(domain.StatusArchived, input.Status+1),
	}
}
