package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.PasswordHashCost < bcrypt.MinCost || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_hash_cost must be between %d and %d (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.PasswordHashCost)
	}

	if c.Mastery.Cooldown <= 0 {
		return fmt.Errorf("mastery.cooldown must be positive (got %v)", c.Mastery.Cooldown)
	}
	if c.Mastery.SessionTTL <= 0 {
		return fmt.Errorf("mastery.session_ttl must be positive (got %v)", c.Mastery.SessionTTL)
	}

	if c.Stats.StreakWindowDays <= 0 {
		return fmt.Errorf("stats.streak_window_days must be positive (got %d)", c.Stats.StreakWindowDays)
	}

	if c.RateLimit.Enabled && c.RateLimit.PerMinute <= 0 {
		return fmt.Errorf("rate_limit.per_minute must be positive when enabled (got %d)", c.RateLimit.PerMinute)
	}

	return nil
}
