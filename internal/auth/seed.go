package auth

import (
	"context"
	"fmt"
	"log/slog"
)

// defaultAccounts are created on first boot when no users exist.
// These are development credentials and must be changed in production.
var defaultAccounts = []struct {
	username string
	password string
	role     Role
}{
	{"admin1", "adminpass1", RoleAdmin},
	{"user1", "userpass1", RoleUser},
}

// SeedUsers creates the default accounts on first boot if no users exist.
// Returns true if seeding ran.
func SeedUsers(ctx context.Context, repo UserRepository, logger *slog.Logger) (bool, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("checking user count: %w", err)
	}

	if count > 0 {
		logger.Debug("users exist, skipping seed")
		return false, nil
	}

	for _, acc := range defaultAccounts {
		hash, err := HashPassword(acc.password)
		if err != nil {
			return false, fmt.Errorf("hashing seed password: %w", err)
		}

		user := &User{
			Username:     acc.username,
			PasswordHash: hash,
			Role:         acc.role,
		}
		if err := repo.Create(ctx, user); err != nil {
			return false, fmt.Errorf("creating seed user %s: %w", acc.username, err)
		}
	}

	logger.Warn("default accounts created",
		"usernames", []string{"admin1", "user1"},
		"action_required", "change these passwords immediately",
	)

	return true, nil
}
