package reviewlog_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/vokabel-backend/internal/adapter/postgres/reviewlog"
	"github.com/heartmarshall/vokabel-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/vokabel-backend/internal/domain"
)

func newRepo(t *testing.T) (*reviewlog.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return reviewlog.New(pool), pool
}

func seedLog(t *testing.T, repo *reviewlog.Repo, userID, itemID uuid.UUID, reviewedAt time.Time, correct bool) {
	t.Helper()
	err := repo.Create(context.Background(), domain.ReviewLog{
		ID:           uuid.New(),
		ItemID:       itemID,
		UserID:       userID,
		Correct:      correct,
		Answer:       "manzana",
		StatusBefore: 1,
		StatusAfter:  2,
		ReviewedAt:   reviewedAt,
	})
	if err != nil {
		t.Fatalf("seed review log: %v", err)
	}
}

func TestRepo_Create_And_ListByItem(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	item := testhelper.SeedItem(t, pool, user.ID, "Apfel", "manzana", 1)

	now := time.Now().UTC().Truncate(time.Microsecond)
	seedLog(t, repo, user.ID, item.ID, now.Add(-time.Hour), false)
	seedLog(t, repo, user.ID, item.ID, now, true)

	logs, err := repo.ListByItem(ctx, user.ID, item.ID, 10)
	if err != nil {
		t.Fatalf("ListByItem: %v", err)
	}

	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if !logs[0].ReviewedAt.After(logs[1].ReviewedAt) {
		t.Error("expected newest log first")
	}
	if !logs[0].Correct || logs[1].Correct {
		t.Error("correct flags out of order")
	}
}

func TestRepo_CountSince(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	item := testhelper.SeedItem(t, pool, user.ID, "Apfel", "manzana", 1)

	now := time.Now().UTC().Truncate(time.Microsecond)
	seedLog(t, repo, user.ID, item.ID, now.Add(-48*time.Hour), true)
	seedLog(t, repo, user.ID, item.ID, now.Add(-time.Hour), true)
	seedLog(t, repo, user.ID, item.ID, now, false)

	count, err := repo.CountSince(ctx, user.ID, now.Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("CountSince: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 reviews since cutoff, got %d", count)
	}
}

func TestRepo_GetDailyCounts(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	item := testhelper.SeedItem(t, pool, user.ID, "Apfel", "manzana", 1)

	dayStart := time.Now().UTC().Truncate(24 * time.Hour)
	// Two reviews today, one yesterday.
	seedLog(t, repo, user.ID, item.ID, dayStart.Add(2*time.Hour), true)
	seedLog(t, repo, user.ID, item.ID, dayStart.Add(3*time.Hour), true)
	seedLog(t, repo, user.ID, item.ID, dayStart.Add(-20*time.Hour), true)

	counts, err := repo.GetDailyCounts(ctx, user.ID, dayStart, 30)
	if err != nil {
		t.Fatalf("GetDailyCounts: %v", err)
	}

	if len(counts) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(counts))
	}
	if counts[0].Count != 2 {
		t.Errorf("expected 2 reviews in the newest bucket, got %d", counts[0].Count)
	}
	if !counts[0].Date.After(counts[1].Date) {
		t.Error("expected newest day first")
	}
}

func TestRepo_GetDailyCounts_Empty(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)

	counts, err := repo.GetDailyCounts(ctx, user.ID, time.Now().UTC(), 30)
	if err != nil {
		t.Fatalf("GetDailyCounts: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("expected no buckets, got %d", len(counts))
	}
}
