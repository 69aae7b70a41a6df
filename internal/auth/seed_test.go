package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestSeedUsers_FirstBoot(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	seeded, err := SeedUsers(context.Background(), repo, logger)
	if err != nil {
		t.Fatalf("SeedUsers() error = %v", err)
	}
	if !seeded {
		t.Error("SeedUsers() = false on empty database, want true")
	}

	admin, err := repo.GetByUsername(context.Background(), "admin1")
	if err != nil {
		t.Fatalf("GetByUsername(admin1) error = %v", err)
	}
	if admin.Role != RoleAdmin {
		t.Errorf("admin1 role = %v, want admin", admin.Role)
	}

	ok, err := VerifyPassword("adminpass1", admin.PasswordHash)
	if err != nil || !ok {
		t.Errorf("seeded admin password should verify, ok=%v err=%v", ok, err)
	}

	user, err := repo.GetByUsername(context.Background(), "user1")
	if err != nil {
		t.Fatalf("GetByUsername(user1) error = %v", err)
	}
	if user.Role != RoleUser {
		t.Errorf("user1 role = %v, want user", user.Role)
	}
}

func TestSeedUsers_SkipsWhenUsersExist(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	seedTestUser(t, db, "existing", RoleUser)

	seeded, err := SeedUsers(context.Background(), repo, logger)
	if err != nil {
		t.Fatalf("SeedUsers() error = %v", err)
	}
	if seeded {
		t.Error("SeedUsers() = true with existing users, want false")
	}

	count, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}
