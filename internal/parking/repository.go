package parking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Repository defines the interface for parking spot persistence.
// This abstraction allows different implementations (SQLite, mock, etc.)
// and enables unit testing without database dependencies.
type Repository interface {
	GetByID(ctx context.Context, id int) (*Spot, error)
	List(ctx context.Context) ([]Spot, error)
	Create(ctx context.Context, spot *Spot) error
	Update(ctx context.Context, spot *Spot) error
}

const spotColumns = `id, status, owner, updated_at`

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// GetByID retrieves a spot by its numeric identifier.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int) (*Spot, error) {
	query := `SELECT ` + spotColumns + ` FROM parking_spots WHERE id = ?`

	spot, err := scanSpot(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSpotNotFound
		}
		return nil, fmt.Errorf("querying spot: %w", err)
	}
	return spot, nil
}

// List retrieves all spots ordered by ID.
func (r *SQLiteRepository) List(ctx context.Context) ([]Spot, error) {
	query := `SELECT ` + spotColumns + ` FROM parking_spots ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying spots: %w", err)
	}
	defer rows.Close()

	var spots []Spot
	for rows.Next() {
		spot, scanErr := scanSpot(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scanning spot: %w", scanErr)
		}
		spots = append(spots, *spot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating spots: %w", err)
	}
	return spots, nil
}

// Create inserts a new spot.
func (r *SQLiteRepository) Create(ctx context.Context, spot *Spot) error {
	if spot.UpdatedAt.IsZero() {
		spot.UpdatedAt = time.Now().UTC()
	}

	query := `INSERT INTO parking_spots (id, status, owner, updated_at) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		spot.ID,
		string(spot.Status),
		nullableOwner(spot.Owner),
		spot.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isConstraintError(err) {
			return ErrSpotExists
		}
		return fmt.Errorf("inserting spot: %w", err)
	}
	return nil
}

// Update persists the spot's status and owner.
func (r *SQLiteRepository) Update(ctx context.Context, spot *Spot) error {
	spot.UpdatedAt = time.Now().UTC()

	query := `UPDATE parking_spots SET status = ?, owner = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		string(spot.Status),
		nullableOwner(spot.Owner),
		spot.UpdatedAt.Format(time.RFC3339),
		spot.ID,
	)
	if err != nil {
		return fmt.Errorf("updating spot: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrSpotNotFound
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpot(scanner rowScanner) (*Spot, error) {
	var s Spot
	var status, updatedAt string
	var owner sql.NullString

	if err := scanner.Scan(&s.ID, &status, &owner, &updatedAt); err != nil {
		return nil, err
	}

	s.Status = Status(status)
	if owner.Valid {
		s.Owner = owner.String
	}
	if t, parseErr := time.Parse(time.RFC3339, updatedAt); parseErr == nil {
		s.UpdatedAt = t
	}
	return &s, nil
}

func nullableOwner(owner string) sql.NullString {
	if owner == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: owner, Valid: true}
}

func isConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "constraint failed") ||
		strings.Contains(msg, "constraint")
}
