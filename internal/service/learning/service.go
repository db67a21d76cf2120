// Package learning implements the core of the trainer: the status
// progression algorithm (mastery engine) and the session flow that walks
// a user through their non-archived vocabulary, weakest words first.
package learning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/vokabel-backend/internal/domain"
	"github.com/heartmarshall/vokabel-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type vocabularyRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.VocabularyItem, error)
	UpdateStatus(ctx context.Context, userID, itemID uuid.UUID, params domain.StatusUpdateParams) (domain.VocabularyItem, error)
}

type reviewLogRepo interface {
	Create(ctx context.Context, log domain.ReviewLog) error
}

type clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config holds the learning-core parameters.
type Config struct {
	// Cooldown is the minimum gap between a correct review and the next
	// status-increasing correct review of the same item.
	Cooldown time.Duration
	// SessionTTL bounds how long an untouched session survives in memory.
	SessionTTL time.Duration
	// PersistTimeout bounds each background status update.
	PersistTimeout time.Duration
}

// Service owns the in-memory learning sessions and delegates attempt
// scoring to EvaluateAttempt. Status updates are persisted in the
// background: feedback reaches the caller before the database write
// resolves, and a failed write never interrupts the session.
type Service struct {
	vocab   vocabularyRepo
	reviews reviewLogRepo
	store   *sessionStore
	cfg     Config
	log     *slog.Logger
	clock   clock
	wg      sync.WaitGroup
}

// NewService creates a new learning service. Call Close on shutdown to
// stop the session janitor and drain in-flight background updates.
func NewService(logger *slog.Logger, vocab vocabularyRepo, reviews reviewLogRepo, cfg Config) *Service {
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = 10 * time.Second
	}
	cleanup := cfg.SessionTTL / 4
	if cleanup < time.Minute {
		cleanup = time.Minute
	}

	return &Service{
		vocab:   vocab,
		reviews: reviews,
		store:   newSessionStore(cfg.SessionTTL, cleanup),
		cfg:     cfg,
		log:     logger.With("service", "learning"),
		clock:   realClock{},
	}
}

// Close stops the session janitor and waits for background persistence
// to finish.
func (s *Service) Close() {
	s.store.Stop()
	s.wg.Wait()
}

// ---------------------------------------------------------------------------
// View types returned to the transport layer
// ---------------------------------------------------------------------------

// CurrentItem is the prompt shown to the learner. The expected answer is
// deliberately absent.
type CurrentItem struct {
	ID     uuid.UUID
	German string
	Status int
}

// SessionView is a read-only snapshot of the user's session.
type SessionView struct {
	State        State
	Position     int
	Total        int
	Current      *CurrentItem
	WrongAnswers []domain.VocabularyItem
}

// AttemptResult is the feedback returned for one submitted answer.
type AttemptResult struct {
	Correct       bool
	TooSoon       bool
	NewStatus     int
	CorrectAnswer string
}

func viewOf(sess *Session) SessionView {
	view := SessionView{
		State:        sess.State(),
		Position:     sess.Position(),
		Total:        sess.Total(),
		WrongAnswers: sess.WrongAnswers(),
	}
	if item, ok := sess.Current(); ok {
		view.Current = &CurrentItem{
			ID:     item.ID,
			German: item.German,
			Status: item.Status,
		}
	}
	return view
}

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// StartSession builds a fresh queue from the user's collection and
// replaces any existing session. With nothing to learn the session is
// created in its EMPTY terminal state.
func (s *Service) StartSession(ctx context.Context) (SessionView, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return SessionView{}, domain.ErrUnauthorized
	}

	items, err := s.vocab.ListByUser(ctx, userID)
	if err != nil {
		return SessionView{}, fmt.Errorf("list vocabulary: %w", err)
	}

	queue := BuildQueue(items)
	sess := newSession(userID, queue, s.clock.Now())
	s.store.put(userID, sess)

	s.log.InfoContext(ctx, "session started",
		slog.String("user_id", userID.String()),
		slog.Int("queue_size", len(queue)),
	)

	return viewOf(sess), nil
}

// GetSession returns a snapshot of the user's session.
// Returns ErrNotFound if no session exists.
func (s *Service) GetSession(ctx context.Context) (SessionView, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return SessionView{}, domain.ErrUnauthorized
	}

	var view SessionView
	err := s.store.with(userID, s.clock.Now(), func(sess *Session) error {
		view = viewOf(sess)
		return nil
	})
	if err != nil {
		return SessionView{}, fmt.Errorf("get session: %w", err)
	}
	return view, nil
}

// SubmitAnswer scores the answer for the item at the cursor and returns
// feedback immediately. The status update and review log are persisted in
// a background goroutine detached from the request context; a failure
// there is logged and the session continues; the next successful attempt
// against the item self-corrects the stored status. Submitting twice for
// the same step returns ErrConflict.
func (s *Service) SubmitAnswer(ctx context.Context, answer string) (AttemptResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return AttemptResult{}, domain.ErrUnauthorized
	}

	now := s.clock.Now()

	var (
		result AttemptResult
		item   domain.VocabularyItem
	)
	err := s.store.with(userID, now, func(sess *Session) error {
		current, active := sess.Current()
		if !active {
			return fmt.Errorf("session is not active: %w", domain.ErrConflict)
		}
		if !sess.markAnswered() {
			return fmt.Errorf("step already answered: %w", domain.ErrConflict)
		}

		eval := EvaluateAttempt(EvaluateInput{
			Status:       current.Status,
			LastReviewed: current.LastReviewed,
			Expected:     current.Spanish,
			Submitted:    answer,
			Now:          now,
			Cooldown:     s.cfg.Cooldown,
		})

		if !eval.Correct {
			sess.recordWrong(current)
		}

		item = current
		result = AttemptResult{
			Correct:       eval.Correct,
			TooSoon:       eval.TooSoon,
			NewStatus:     eval.NewStatus,
			CorrectAnswer: current.Spanish,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return AttemptResult{}, fmt.Errorf("no active session: %w", domain.ErrNotFound)
		}
		return AttemptResult{}, err
	}

	s.persistAttempt(ctx, userID, item, result, answer, now)

	return result, nil
}

// Advance moves the session to the next item. Advancing before the
// current step was answered returns ErrConflict; past the last item the
// session completes.
func (s *Service) Advance(ctx context.Context) (SessionView, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return SessionView{}, domain.ErrUnauthorized
	}

	var view SessionView
	err := s.store.with(userID, s.clock.Now(), func(sess *Session) error {
		if sess.State() != StateActive {
			return fmt.Errorf("session is not active: %w", domain.ErrConflict)
		}
		if !sess.answered {
			return fmt.Errorf("current step not answered: %w", domain.ErrConflict)
		}
		sess.advance()
		view = viewOf(sess)
		return nil
	})
	if err != nil {
		return SessionView{}, fmt.Errorf("advance session: %w", err)
	}

	if view.State == StateCompleted {
		s.log.InfoContext(ctx, "session completed",
			slog.String("user_id", userID.String()),
			slog.Int("total", view.Total),
			slog.Int("wrong", len(view.WrongAnswers)),
		)
	}

	return view, nil
}

// AbandonSession discards the user's in-memory session. Already-persisted
// item updates stay as they are.
func (s *Service) AbandonSession(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	s.store.delete(userID)
	return nil
}

// persistAttempt writes the status update and the review log in the
// background. The context is detached so a finished HTTP request does not
// cancel the write.
func (s *Service) persistAttempt(ctx context.Context, userID uuid.UUID, item domain.VocabularyItem, result AttemptResult, answer string, now time.Time) {
	bgCtx := context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		updCtx, cancel := context.WithTimeout(bgCtx, s.cfg.PersistTimeout)
		defer cancel()

		_, err := s.vocab.UpdateStatus(updCtx, userID, item.ID, domain.StatusUpdateParams{
			Status:       result.NewStatus,
			LastReviewed: now,
		})
		if err != nil {
			// The item may have been deleted mid-session; anything else is
			// transient. Either way the session must not notice.
			s.log.ErrorContext(updCtx, "background status update failed",
				slog.String("user_id", userID.String()),
				slog.String("item_id", item.ID.String()),
				slog.Any("error", err),
			)
			return
		}

		if err := s.reviews.Create(updCtx, domain.ReviewLog{
			ID:           uuid.New(),
			ItemID:       item.ID,
			UserID:       userID,
			Correct:      result.Correct,
			TooSoon:      result.TooSoon,
			Answer:       answer,
			StatusBefore: item.Status,
			StatusAfter:  result.NewStatus,
			ReviewedAt:   now,
		}); err != nil {
			s.log.ErrorContext(updCtx, "create review log failed",
				slog.String("user_id", userID.String()),
				slog.String("item_id", item.ID.String()),
				slog.Any("error", err),
			)
		}
	}()
}
