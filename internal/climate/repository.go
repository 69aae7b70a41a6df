package climate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// stateID keys the single office state row.
const stateID = "office"

// Repository defines the interface for climate state persistence.
// This abstraction allows different implementations (SQLite, mock, etc.)
// and enables unit testing without database dependencies.
type Repository interface {
	Get(ctx context.Context) (*State, error)
	Update(ctx context.Context, state *State) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Get retrieves the office state.
func (r *SQLiteRepository) Get(ctx context.Context) (*State, error) {
	query := `SELECT temperature, hvac_mode, lights_on, updated_at FROM office_state WHERE id = ?`

	var s State
	var mode, updatedAt string
	var lightsOn int

	err := r.db.QueryRowContext(ctx, query, stateID).Scan(
		&s.Temperature, &mode, &lightsOn, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("querying office state: %w", err)
	}

	s.Mode = Mode(mode)
	s.LightsOn = lightsOn != 0
	if t, parseErr := time.Parse(time.RFC3339, updatedAt); parseErr == nil {
		s.UpdatedAt = t
	}
	return &s, nil
}

// Update persists the office state.
func (r *SQLiteRepository) Update(ctx context.Context, state *State) error {
	state.UpdatedAt = time.Now().UTC()

	query := `UPDATE office_state SET temperature = ?, hvac_mode = ?, lights_on = ?, updated_at = ? WHERE id = ?`

	lightsOn := 0
	if state.LightsOn {
		lightsOn = 1
	}

	result, err := r.db.ExecContext(ctx, query,
		state.Temperature,
		string(state.Mode),
		lightsOn,
		state.UpdatedAt.Format(time.RFC3339),
		stateID,
	)
	if err != nil {
		return fmt.Errorf("updating office state: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrStateNotFound
	}
	return nil
}
