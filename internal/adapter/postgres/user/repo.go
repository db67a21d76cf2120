// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/vokabel-backend/internal/adapter/postgres"
	"github.com/heartmarshall/vokabel-backend/internal/domain"
)

// Repo provides user and user-settings persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const userColumns = `id, email, username, password_hash, created_at, updated_at`

const getUserByIDSQL = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

const getUserByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

const createUserSQL = `
INSERT INTO users (id, email, username, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
RETURNING ` + userColumns

const getSettingsSQL = `
SELECT user_id, daily_goal, timezone FROM user_settings WHERE user_id = $1`

const createSettingsSQL = `
INSERT INTO user_settings (user_id, daily_goal, timezone)
VALUES ($1, $2, $3)`

const setDailyGoalSQL = `
UPDATE user_settings SET daily_goal = $2, updated_at = now()
WHERE user_id = $1
RETURNING user_id, daily_goal, timezone`

// ---------------------------------------------------------------------------
// User operations
// ---------------------------------------------------------------------------

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getUserByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	return u, nil
}

// GetByEmail returns a user by email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getUserByEmailSQL, email))
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}

	return u, nil
}

// Create inserts a new user and returns the persisted domain.User.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanUser(querier.QueryRow(ctx, createUserSQL,
		u.ID, u.Email, u.Username, u.PasswordHash, u.CreatedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}

	return created, nil
}

// ---------------------------------------------------------------------------
// UserSettings operations
// ---------------------------------------------------------------------------

// GetSettings returns the settings for the given user.
func (r *Repo) GetSettings(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.UserSettings
	err := querier.QueryRow(ctx, getSettingsSQL, userID).Scan(&s.UserID, &s.DailyGoal, &s.Timezone)
	if err != nil {
		return nil, postgres.MapError(err, "user_settings", userID)
	}

	return &s, nil
}

// CreateSettings inserts new user settings.
func (r *Repo) CreateSettings(ctx context.Context, s domain.UserSettings) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createSettingsSQL, s.UserID, s.DailyGoal, s.Timezone)
	if err != nil {
		return postgres.MapError(err, "user_settings", s.UserID)
	}

	return nil
}

// SetDailyGoal updates the user's daily review goal.
func (r *Repo) SetDailyGoal(ctx context.Context, userID uuid.UUID, goal int) (*domain.UserSettings, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.UserSettings
	err := querier.QueryRow(ctx, setDailyGoalSQL, userID, goal).Scan(&s.UserID, &s.DailyGoal, &s.Timezone)
	if err != nil {
		return nil, postgres.MapError(err, "user_settings", userID)
	}

	return &s, nil
}

// ---------------------------------------------------------------------------
// Scanning helpers
// ---------------------------------------------------------------------------

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
