package wellness

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
		CREATE TABLE wellness_checkins (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			mood INTEGER NOT NULL,
			energy INTEGER NOT NULL,
			stress INTEGER NOT NULL,
			advice TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		) STRICT;
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("applying schema: %v", err)
	}

	return db
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewSQLiteRepository(setupTestDB(t)), nil)
}

func TestCheckIn(t *testing.T) {
	svc := newTestService(t)

	checkin, err := svc.CheckIn(context.Background(), "alice", 7, 6, 3)
	if err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	if checkin.ID == "" {
		t.Error("CheckIn() should assign an ID")
	}
	if len(checkin.Advice) != 0 {
		t.Errorf("healthy scores should produce no advice, got %v", checkin.Advice)
	}
}

func TestCheckInAdvice(t *testing.T) {
	tests := []struct {
		name   string
		mood   int
		energy int
		stress int
		want   []string
	}{
		{"high stress", 7, 6, 8, []string{"Take a break!"}},
		{"low energy", 7, 3, 3, []string{"Drink coffee or go for a walk"}},
		{"low mood", 4, 6, 3, []string{"Talk to a friend"}},
		{
			"everything wrong", 2, 2, 9,
			[]string{"Take a break!", "Drink coffee or go for a walk", "Talk to a friend"},
		},
		{"boundary values", 5, 4, 7, []string{}},
	}

	svc := newTestService(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkin, err := svc.CheckIn(context.Background(), "alice", tt.mood, tt.energy, tt.stress)
			if err != nil {
				t.Fatalf("CheckIn() error = %v", err)
			}
			if !reflect.DeepEqual(checkin.Advice, tt.want) {
				t.Errorf("advice = %v, want %v", checkin.Advice, tt.want)
			}
		})
	}
}

func TestCheckInValidation(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.CheckIn(context.Background(), "", 5, 5, 5); !errors.Is(err, ErrMissingUsername) {
		t.Errorf("empty username error = %v, want ErrMissingUsername", err)
	}
	if _, err := svc.CheckIn(context.Background(), "alice", 0, 5, 5); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("mood 0 error = %v, want ErrInvalidScore", err)
	}
	if _, err := svc.CheckIn(context.Background(), "alice", 5, 11, 5); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("energy 11 error = %v, want ErrInvalidScore", err)
	}
	if _, err := svc.CheckIn(context.Background(), "alice", 5, 5, -1); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("stress -1 error = %v, want ErrInvalidScore", err)
	}
}

func TestHistory(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.CheckIn(context.Background(), "alice", 8, 8, 2); err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	if _, err := svc.CheckIn(context.Background(), "alice", 3, 3, 9); err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	if _, err := svc.CheckIn(context.Background(), "bob", 5, 5, 5); err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}

	history, err := svc.History(context.Background(), "ALICE", 0)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("History() = %d checkins, want 2", len(history))
	}
	for _, c := range history {
		if c.Username != "alice" {
			t.Errorf("history contains checkin for %q", c.Username)
		}
		if c.Advice == nil {
			t.Error("stored advice should round-trip as a slice")
		}
	}
}

func TestHistoryLimit(t *testing.T) {
	svc := newTestService(t)

	for i := 0; i < 5; i++ {
		if _, err := svc.CheckIn(context.Background(), "alice", 5, 5, 5); err != nil {
			t.Fatalf("CheckIn() error = %v", err)
		}
	}

	history, err := svc.History(context.Background(), "alice", 3)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 3 {
		t.Errorf("History() = %d checkins, want 3", len(history))
	}
}
