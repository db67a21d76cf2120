// Package stats aggregates learning statistics: daily progress against the
// goal, the review streak, and the status distribution of the collection.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/vokabel-backend/internal/config"
	"github.com/heartmarshall/vokabel-backend/internal/domain"
	"github.com/heartmarshall/vokabel-backend/pkg/ctxutil"
)

// vocabularyRepo defines the vocabulary repository interface needed by the stats service.
type vocabularyRepo interface {
	CountByStatus(ctx context.Context, userID uuid.UUID) ([]domain.StatusCount, error)
}

// reviewLogRepo defines the review log repository interface needed by the stats service.
type reviewLogRepo interface {
	CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
	GetDailyCounts(ctx context.Context, userID uuid.UUID, dayStart time.Time, lastNDays int) ([]domain.DayReviewCount, error)
}

// settingsRepo defines the settings repository interface needed by the stats service.
type settingsRepo interface {
	GetSettings(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
	SetDailyGoal(ctx context.Context, userID uuid.UUID, goal int) (*domain.UserSettings, error)
}

// Service implements statistics operations.
type Service struct {
	log      *slog.Logger
	vocab    vocabularyRepo
	reviews  reviewLogRepo
	settings settingsRepo
	cfg      config.StatsConfig
}

// NewService creates a new stats service instance.
func NewService(logger *slog.Logger, vocab vocabularyRepo, reviews reviewLogRepo, settings settingsRepo, cfg config.StatsConfig) *Service {
	return &Service{
		log:      logger.With("service", "stats"),
		vocab:    vocab,
		reviews:  reviews,
		settings: settings,
		cfg:      cfg,
	}
}

// GetDashboard returns aggregated learning statistics for the user.
func (s *Service) GetDashboard(ctx context.Context) (domain.Dashboard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Dashboard{}, domain.ErrUnauthorized
	}

	now := time.Now()

	settings, err := s.settings.GetSettings(ctx, userID)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("load settings: %w", err)
	}

	tz := ParseTimezone(settings.Timezone)
	dayStart := DayStart(now, tz)

	reviewedToday, err := s.reviews.CountSince(ctx, userID, dayStart)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("count reviewed today: %w", err)
	}

	statusCounts, err := s.vocab.CountByStatus(ctx, userID)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("count by status: %w", err)
	}

	dailyCounts, err := s.reviews.GetDailyCounts(ctx, userID, dayStart, s.cfg.StreakWindowDays)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("get daily review counts: %w", err)
	}

	// Convert now to the user's timezone and take the date at midnight.
	nowInTz := now.In(tz)
	today := time.Date(nowInTz.Year(), nowInTz.Month(), nowInTz.Day(), 0, 0, 0, 0, tz)
	streak := calculateStreak(dailyCounts, today)

	counts := make(map[int]int, len(statusCounts))
	total, archived := 0, 0
	for _, sc := range statusCounts {
		counts[sc.Status] = sc.Count
		total += sc.Count
		if sc.Status == domain.StatusArchived {
			archived += sc.Count
		}
	}

	dashboard := domain.Dashboard{
		DailyProgress:  reviewedToday,
		DailyGoal:      settings.DailyGoal,
		Streak:         streak,
		TotalItems:     total,
		LearnableCount: total - archived,
		ArchivedCount:  archived,
		StatusCounts:   counts,
	}

	s.log.InfoContext(ctx, "dashboard loaded",
		slog.String("user_id", userID.String()),
		slog.Int("reviewed_today", reviewedToday),
		slog.Int("streak", streak),
	)

	return dashboard, nil
}

// SetDailyGoal updates the user's daily review goal.
func (s *Service) SetDailyGoal(ctx context.Context, goal int) (*domain.UserSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if goal < 1 || goal > 500 {
		return nil, domain.NewValidationError("daily_goal", "must be between 1 and 500")
	}

	settings, err := s.settings.SetDailyGoal(ctx, userID, goal)
	if err != nil {
		return nil, fmt.Errorf("stats.SetDailyGoal: %w", err)
	}

	s.log.InfoContext(ctx, "daily goal updated",
		slog.String("user_id", userID.String()),
		slog.Int("daily_goal", goal),
	)

	return settings, nil
}
