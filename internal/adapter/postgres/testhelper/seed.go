package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/vokabel-backend/internal/domain"
)

// SeedUser inserts a user with a unique email and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	u := domain.User{
		ID:           uuid.New(),
		Email:        "user-" + uuid.New().String()[:8] + "@example.com",
		Username:     "tester",
		PasswordHash: "$2a$10$seeded-hash-not-a-real-one",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(context.Background(), `
		INSERT INTO users (id, email, username, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)`,
		u.ID, u.Email, u.Username, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed user: %v", err)
	}

	return u
}

// SeedItem inserts a vocabulary item for the given user and returns it.
func SeedItem(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, german, spanish string, status int) domain.VocabularyItem {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	item := domain.VocabularyItem{
		ID:        uuid.New(),
		UserID:    userID,
		German:    german,
		Spanish:   spanish,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(), `
		INSERT INTO vocabulary_items (id, user_id, german, spanish, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		item.ID, item.UserID, item.German, item.Spanish, item.Status, item.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed vocabulary item: %v", err)
	}

	return item
}
