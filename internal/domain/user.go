package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Password authentication only.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSettings holds per-user preferences consumed by the stats service.
type UserSettings struct {
	UserID    uuid.UUID
	DailyGoal int
	Timezone  string
}

// DefaultUserSettings returns the settings assigned at registration.
func DefaultUserSettings(userID uuid.UUID) UserSettings {
	return UserSettings{
		UserID:    userID,
		DailyGoal: 10,
		Timezone:  "UTC",
	}
}

// RefreshToken is a stored (hashed) refresh token. Tokens are rotated on
// every refresh; a revoked or unknown hash indicates reuse.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the token has expired at the given time.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
