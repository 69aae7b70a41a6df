package automation

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates an in-memory SQLite database with the rules schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}

	// Matches the migration.
	schema := `
		CREATE TABLE automation_rules (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			trigger_type TEXT NOT NULL,
			condition TEXT NOT NULL DEFAULT '{}',
			action_type TEXT NOT NULL,
			action_params TEXT NOT NULL DEFAULT '{}',
			active INTEGER NOT NULL DEFAULT 1,
			description TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		) STRICT;`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("creating schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteCreateAndGet(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	rule := &Rule{
		Trigger:     TriggerTime,
		Condition:   Condition{At: "19:00"},
		Action:      ActionHVACOff,
		Active:      true,
		Description: "Turn off HVAC after business hours.",
	}
	if err := repo.Create(ctx, rule); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rule.ID == 0 {
		t.Fatal("Create() did not assign an ID")
	}

	got, err := repo.GetByID(ctx, rule.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Trigger != TriggerTime || got.Condition.At != "19:00" {
		t.Errorf("trigger round-trip: %+v", got)
	}
	if got.Action != ActionHVACOff || got.Params.SpotID != 0 {
		t.Errorf("action round-trip: %+v", got)
	}
	if !got.Active || got.Description != rule.Description {
		t.Errorf("flags round-trip: %+v", got)
	}
}

func TestSQLiteParamsRoundTrip(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	rule := &Rule{
		Trigger:   TriggerUserLogin,
		Condition: Condition{Username: "user1"},
		Action:    ActionReserveParking,
		Params:    ActionParams{SpotID: 12},
		Active:    true,
	}
	if err := repo.Create(ctx, rule); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, rule.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Params.SpotID != 12 {
		t.Errorf("SpotID = %d, want 12", got.Params.SpotID)
	}
	if got.Condition.Username != "user1" {
		t.Errorf("Username = %q, want user1", got.Condition.Username)
	}
}

func TestSQLiteListCreationOrder(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	for _, area := range []string{"first", "second", "third"} {
		rule := &Rule{Trigger: TriggerMotion, Condition: Condition{Area: area}, Action: ActionLightsOn, Active: true}
		if err := repo.Create(ctx, rule); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	rules, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(rules))
	}
	for i, want := range []string{"first", "second", "third"} {
		if rules[i].Condition.Area != want {
			t.Errorf("rules[%d].Area = %q, want %q", i, rules[i].Condition.Area, want)
		}
	}
}

func TestSQLiteUpdate(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	rule := &Rule{Trigger: TriggerMotion, Condition: Condition{Area: "lobby"}, Action: ActionLightsOn, Active: true}
	if err := repo.Create(ctx, rule); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	rule.Active = false
	if err := repo.Update(ctx, rule); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(ctx, rule.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Active {
		t.Error("rule still active after update")
	}

	missing := &Rule{ID: 999, Trigger: TriggerMotion, Condition: Condition{Area: "x"}, Action: ActionLightsOn}
	if err := repo.Update(ctx, missing); !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrRuleNotFound", err)
	}
}

func TestSQLiteDelete(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	rule := &Rule{Trigger: TriggerMotion, Condition: Condition{Area: "lobby"}, Action: ActionLightsOn, Active: true}
	if err := repo.Create(ctx, rule); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete(ctx, rule.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, rule.ID); !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrRuleNotFound", err)
	}
	if err := repo.Delete(ctx, rule.ID); !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("second Delete() error = %v, want ErrRuleNotFound", err)
	}
}

func TestSQLiteIDsNeverReused(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	first := &Rule{Trigger: TriggerMotion, Condition: Condition{Area: "a"}, Action: ActionLightsOn, Active: true}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatal(err)
	}

	second := &Rule{Trigger: TriggerMotion, Condition: Condition{Area: "b"}, Action: ActionLightsOn, Active: true}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatal(err)
	}
	if second.ID <= first.ID {
		t.Errorf("second.ID = %d, want > %d", second.ID, first.ID)
	}
}
