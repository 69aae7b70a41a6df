package wellness

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository defines the interface for check-in persistence.
type Repository interface {
	Create(ctx context.Context, checkin *Checkin) error

	// ListByUser returns a user's check-ins, most recent first.
	ListByUser(ctx context.Context, username string, limit int) ([]Checkin, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a check-in. Advice is stored as a JSON array.
func (r *SQLiteRepository) Create(ctx context.Context, checkin *Checkin) error {
	if checkin.CreatedAt.IsZero() {
		checkin.CreatedAt = time.Now().UTC()
	}

	adviceJSON, err := json.Marshal(checkin.Advice)
	if err != nil {
		return fmt.Errorf("marshalling advice: %w", err)
	}

	query := `
		INSERT INTO wellness_checkins (id, username, mood, energy, stress, advice, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		checkin.ID,
		checkin.Username,
		checkin.Mood,
		checkin.Energy,
		checkin.Stress,
		string(adviceJSON),
		checkin.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting checkin: %w", err)
	}
	return nil
}

// ListByUser returns a user's check-ins, most recent first.
func (r *SQLiteRepository) ListByUser(ctx context.Context, username string, limit int) ([]Checkin, error) {
	if limit <= 0 {
		limit = 30 //nolint:mnd // default page: one month of daily check-ins
	}

	query := `
		SELECT id, username, mood, energy, stress, advice, created_at
		FROM wellness_checkins
		WHERE username = ? COLLATE NOCASE
		ORDER BY created_at DESC, id DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, username, limit)
	if err != nil {
		return nil, fmt.Errorf("querying checkins: %w", err)
	}
	defer rows.Close()

	var checkins []Checkin
	for rows.Next() {
		var c Checkin
		var adviceJSON, createdAt string

		if err := rows.Scan(&c.ID, &c.Username, &c.Mood, &c.Energy, &c.Stress, &adviceJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning checkin: %w", err)
		}

		if err := json.Unmarshal([]byte(adviceJSON), &c.Advice); err != nil {
			return nil, fmt.Errorf("unmarshalling advice: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
			c.CreatedAt = t
		}

		checkins = append(checkins, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating checkins: %w", err)
	}
	return checkins, nil
}
