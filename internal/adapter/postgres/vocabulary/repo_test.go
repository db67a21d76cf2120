package vocabulary_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/vokabel-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/vokabel-backend/internal/adapter/postgres/vocabulary"
	"github.com/heartmarshall/vokabel-backend/internal/domain"
)

func newRepo(t *testing.T) (*vocabulary.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return vocabulary.New(pool), pool
}

func assertIsDomainError(t *testing.T, err, want error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error wrapping %v, got nil", want)
	}
	if !errors.Is(err, want) {
		t.Fatalf("expected error wrapping %v, got: %v", want, err)
	}
}

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	got, err := repo.Create(ctx, domain.VocabularyItem{
		ID:        uuid.New(),
		UserID:    user.ID,
		German:    "Haus",
		Spanish:   "casa",
		Status:    domain.StatusMin,
		CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if got.German != "Haus" || got.Spanish != "casa" {
		t.Errorf("word pair mismatch: got %q/%q", got.German, got.Spanish)
	}
	if got.Status != domain.StatusMin {
		t.Errorf("Status mismatch: got %d, want %d", got.Status, domain.StatusMin)
	}
	if got.LastReviewed != nil {
		t.Errorf("LastReviewed should be nil for a new item, got %v", got.LastReviewed)
	}
}

func TestRepo_Create_InvalidUserID(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	// Non-existent user_id triggers a foreign key violation -> ErrNotFound.
	_, err := repo.Create(ctx, domain.VocabularyItem{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		German:    "Haus",
		Spanish:   "casa",
		Status:    domain.StatusMin,
		CreatedAt: time.Now().UTC(),
	})
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_Create_StatusOutOfRange(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)

	// The check constraint rejects statuses outside 1..5 -> ErrValidation.
	_, err := repo.Create(ctx, domain.VocabularyItem{
		ID:        uuid.New(),
		UserID:    user.ID,
		German:    "Haus",
		Spanish:   "casa",
		Status:    6,
		CreatedAt: time.Now().UTC(),
	})
	assertIsDomainError(t, err, domain.ErrValidation)
}

func TestRepo_GetByID_WrongUser(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	other := testhelper.SeedUser(t, pool)
	item := testhelper.SeedItem(t, pool, owner.ID, "Hund", "perro", 2)

	if _, err := repo.GetByID(ctx, owner.ID, item.ID); err != nil {
		t.Fatalf("GetByID as owner: %v", err)
	}

	_, err := repo.GetByID(ctx, other.ID, item.ID)
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_ListByUser_NewestFirst(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	testhelper.SeedItem(t, pool, user.ID, "Apfel", "manzana", 1)
	// Ensure distinct created_at.
	time.Sleep(5 * time.Millisecond)
	testhelper.SeedItem(t, pool, user.ID, "Hund", "perro", 2)

	items, err := repo.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].German != "Hund" {
		t.Errorf("expected newest item first, got %q", items[0].German)
	}
}

func TestRepo_List_Filters(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	testhelper.SeedItem(t, pool, user.ID, "Apfel", "manzana", 1)
	testhelper.SeedItem(t, pool, user.ID, "Hund", "perro", 2)
	testhelper.SeedItem(t, pool, user.ID, "Handschuh", "guante", 2)

	status := 2
	items, err := repo.List(ctx, user.ID, domain.VocabularyFilter{Status: &status})
	if err != nil {
		t.Fatalf("List by status: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 status-2 items, got %d", len(items))
	}

	items, err = repo.List(ctx, user.ID, domain.VocabularyFilter{Search: "hund"})
	if err != nil {
		t.Fatalf("List by search: %v", err)
	}
	if len(items) != 1 || items[0].German != "Hund" {
		t.Fatalf("case-insensitive search failed: %+v", items)
	}

	items, err = repo.List(ctx, user.ID, domain.VocabularyFilter{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("List with pagination: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item with limit=1, got %d", len(items))
	}
}

func TestRepo_UpdateStatus_PersistsLastReviewed(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	item := testhelper.SeedItem(t, pool, user.ID, "Katze", "gato", 2)

	reviewedAt := time.Now().UTC().Truncate(time.Microsecond)
	got, err := repo.UpdateStatus(ctx, user.ID, item.ID, domain.StatusUpdateParams{
		Status:       3,
		LastReviewed: reviewedAt,
	})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if got.Status != 3 {
		t.Errorf("Status mismatch: got %d, want 3", got.Status)
	}
	if got.LastReviewed == nil || !got.LastReviewed.Equal(reviewedAt) {
		t.Errorf("LastReviewed mismatch: got %v, want %v", got.LastReviewed, reviewedAt)
	}
}

func TestRepo_UpdateStatus_NotFound(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)

	_, err := repo.UpdateStatus(ctx, user.ID, uuid.New(), domain.StatusUpdateParams{
		Status:       2,
		LastReviewed: time.Now().UTC(),
	})
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_UpdateText(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	item := testhelper.SeedItem(t, pool, user.ID, "Katzee", "gatoo", 2)

	got, err := repo.UpdateText(ctx, user.ID, item.ID, "Katze", "gato")
	if err != nil {
		t.Fatalf("UpdateText: %v", err)
	}

	if got.German != "Katze" || got.Spanish != "gato" {
		t.Errorf("word pair mismatch after update: %q/%q", got.German, got.Spanish)
	}
	if got.Status != item.Status {
		t.Errorf("Status must be untouched by UpdateText: got %d, want %d", got.Status, item.Status)
	}
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	item := testhelper.SeedItem(t, pool, user.ID, "Baum", "árbol", 1)

	if err := repo.Delete(ctx, user.ID, item.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	err := repo.Delete(ctx, user.ID, item.ID)
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_CountByStatus(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	testhelper.SeedItem(t, pool, user.ID, "Apfel", "manzana", 1)
	testhelper.SeedItem(t, pool, user.ID, "Hund", "perro", 1)
	testhelper.SeedItem(t, pool, user.ID, "Baum", "árbol", 5)

	counts, err := repo.CountByStatus(ctx, user.ID)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}

	want := map[int]int{1: 2, 5: 1}
	if len(counts) != len(want) {
		t.Fatalf("expected %d status groups, got %d", len(want), len(counts))
	}
	for _, sc := range counts {
		if want[sc.Status] != sc.Count {
			t.Errorf("status %d: got count %d, want %d", sc.Status, sc.Count, want[sc.Status])
		}
	}
}
