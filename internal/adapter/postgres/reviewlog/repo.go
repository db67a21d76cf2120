// Package reviewlog implements the ReviewLog repository using PostgreSQL.
package reviewlog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/vokabel-backend/internal/adapter/postgres"
	"github.com/heartmarshall/vokabel-backend/internal/domain"
)

// Repo provides review log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new review log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO review_logs (id, item_id, user_id, correct, too_soon, answer, status_before, status_after, reviewed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const countSinceSQL = `
SELECT count(*) FROM review_logs
WHERE user_id = $1 AND reviewed_at >= $2`

const getDailyCountsSQL = `
SELECT
    date_trunc('day', reviewed_at)::date AS review_date,
    count(*) AS review_count
FROM review_logs
WHERE user_id = $1 AND reviewed_at >= $2
GROUP BY review_date
ORDER BY review_date DESC
LIMIT $3`

const listByItemSQL = `
SELECT id, item_id, user_id, correct, too_soon, answer, status_before, status_after, reviewed_at
FROM review_logs
WHERE user_id = $1 AND item_id = $2
ORDER BY reviewed_at DESC
LIMIT $3`

// Create inserts a new review log entry.
func (r *Repo) Create(ctx context.Context, rl domain.ReviewLog) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createSQL,
		rl.ID, rl.ItemID, rl.UserID, rl.Correct, rl.TooSoon,
		rl.Answer, rl.StatusBefore, rl.StatusAfter, rl.ReviewedAt,
	)
	if err != nil {
		return postgres.MapError(err, "review_log", rl.ID)
	}

	return nil
}

// CountSince returns the count of reviews for a user since the given instant.
// The caller computes the instant (usually the start of the user's day in
// their timezone) and passes it in UTC.
func (r *Repo) CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countSinceSQL, userID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count reviews since: %w", err)
	}

	return count, nil
}

// GetDailyCounts returns daily review counts grouped by day, ordered by date
// DESC, limited to lastNDays entries. dayStart is the start of the current
// day; the query goes back lastNDays from it.
func (r *Repo) GetDailyCounts(ctx context.Context, userID uuid.UUID, dayStart time.Time, lastNDays int) ([]domain.DayReviewCount, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	from := dayStart.AddDate(0, 0, -lastNDays)

	rows, err := querier.Query(ctx, getDailyCountsSQL, userID, from, lastNDays)
	if err != nil {
		return nil, fmt.Errorf("get daily review counts: %w", err)
	}
	defer rows.Close()

	var counts []domain.DayReviewCount
	for rows.Next() {
		var dc domain.DayReviewCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, fmt.Errorf("scan daily review count: %w", err)
		}
		counts = append(counts, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily review counts: %w", err)
	}

	if counts == nil {
		counts = []domain.DayReviewCount{}
	}

	return counts, nil
}

// ListByItem returns the most recent review logs for an item, newest first.
func (r *Repo) ListByItem(ctx context.Context, userID, itemID uuid.UUID, limit int) ([]domain.ReviewLog, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if limit <= 0 {
		limit = 50
	}

	rows, err := querier.Query(ctx, listByItemSQL, userID, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("list review_logs by item: %w", err)
	}
	defer rows.Close()

	var logs []domain.ReviewLog
	for rows.Next() {
		var rl domain.ReviewLog
		if err := rows.Scan(
			&rl.ID, &rl.ItemID, &rl.UserID, &rl.Correct, &rl.TooSoon,
			&rl.Answer, &rl.StatusBefore, &rl.StatusAfter, &rl.ReviewedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review_log: %w", err)
		}
		logs = append(logs, rl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review_logs: %w", err)
	}

	if logs == nil {
		logs = []domain.ReviewLog{}
	}

	return logs, nil
}
