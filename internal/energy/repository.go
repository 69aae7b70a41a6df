package energy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ledgerID keys the single office ledger row.
const ledgerID = "office"

// Repository defines the interface for savings ledger persistence.
// This abstraction allows different implementations (SQLite, mock, etc.)
// and enables unit testing without database dependencies.
type Repository interface {
	Get(ctx context.Context) (*Savings, error)
	Update(ctx context.Context, savings *Savings) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Get retrieves the savings ledger.
func (r *SQLiteRepository) Get(ctx context.Context) (*Savings, error) {
	query := `SELECT hvac_runtime_reduced_hours, lights_off_hours, updated_at FROM energy_savings WHERE id = ?`

	var s Savings
	var updatedAt string

	err := r.db.QueryRowContext(ctx, query, ledgerID).Scan(
		&s.HVACRuntimeReducedHours, &s.LightsOffHours, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLedgerNotFound
		}
		return nil, fmt.Errorf("querying savings ledger: %w", err)
	}

	if t, parseErr := time.Parse(time.RFC3339, updatedAt); parseErr == nil {
		s.UpdatedAt = t
	}
	return &s, nil
}

// Update persists the ledger totals.
func (r *SQLiteRepository) Update(ctx context.Context, savings *Savings) error {
	savings.UpdatedAt = time.Now().UTC()

	query := `UPDATE energy_savings SET hvac_runtime_reduced_hours = ?, lights_off_hours = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		savings.HVACRuntimeReducedHours,
		savings.LightsOffHours,
		savings.UpdatedAt.Format(time.RFC3339),
		ledgerID,
	)
	if err != nil {
		return fmt.Errorf("updating savings ledger: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrLedgerNotFound
	}
	return nil
}
