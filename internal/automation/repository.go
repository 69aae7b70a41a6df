package automation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Repository defines the interface for rule persistence.
// This abstraction allows different implementations (SQLite, mock, etc.)
// and enables unit testing without database dependencies.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Rule, error)
	// List returns all rules in creation order (ascending ID).
	List(ctx context.Context) ([]Rule, error)
	// Create inserts a rule and assigns its ID.
	Create(ctx context.Context, rule *Rule) error
	Update(ctx context.Context, rule *Rule) error
	Delete(ctx context.Context, id int64) error
}

const ruleColumns = `id, trigger_type, condition, action_type, action_params, active, description, created_at, updated_at`

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// GetByID retrieves a rule by its identifier.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*Rule, error) {
	query := `SELECT ` + ruleColumns + ` FROM automation_rules WHERE id = ?`

	rule, err := scanRule(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRuleNotFound
		}
		return nil, fmt.Errorf("querying rule: %w", err)
	}
	return rule, nil
}

// List retrieves all rules in creation order.
func (r *SQLiteRepository) List(ctx context.Context) ([]Rule, error) {
	query := `SELECT ` + ruleColumns + ` FROM automation_rules ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying rules: %w", err)
	}
	defer rows.Close()

	var rules []Rule
	for rows.Next() {
		rule, scanErr := scanRule(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scanning rule: %w", scanErr)
		}
		rules = append(rules, *rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rules: %w", err)
	}
	return rules, nil
}

// Create inserts a rule. The AUTOINCREMENT id is written back so rule
// IDs reflect creation order.
func (r *SQLiteRepository) Create(ctx context.Context, rule *Rule) error {
	conditionJSON, err := json.Marshal(rule.Condition)
	if err != nil {
		return fmt.Errorf("marshalling condition: %w", err)
	}
	paramsJSON, err := json.Marshal(rule.Params)
	if err != nil {
		return fmt.Errorf("marshalling params: %w", err)
	}

	now := time.Now().UTC()
	rule.CreatedAt = now
	rule.UpdatedAt = now

	query := `
		INSERT INTO automation_rules (trigger_type, condition, action_type, action_params, active, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		string(rule.Trigger),
		string(conditionJSON),
		string(rule.Action),
		string(paramsJSON),
		boolToInt(rule.Active),
		rule.Description,
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting rule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading rule id: %w", err)
	}
	rule.ID = id
	return nil
}

// Update modifies an existing rule.
func (r *SQLiteRepository) Update(ctx context.Context, rule *Rule) error {
	conditionJSON, err := json.Marshal(rule.Condition)
	if err != nil {
		return fmt.Errorf("marshalling condition: %w", err)
	}
	paramsJSON, err := json.Marshal(rule.Params)
	if err != nil {
		return fmt.Errorf("marshalling params: %w", err)
	}

	rule.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE automation_rules SET
			trigger_type = ?, condition = ?, action_type = ?, action_params = ?,
			active = ?, description = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		string(rule.Trigger),
		string(conditionJSON),
		string(rule.Action),
		string(paramsJSON),
		boolToInt(rule.Active),
		rule.Description,
		rule.UpdatedAt.Format(time.RFC3339),
		rule.ID,
	)
	if err != nil {
		return fmt.Errorf("updating rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

// Delete removes a rule by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM automation_rules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRule(scanner rowScanner) (*Rule, error) {
	var r Rule
	var trigger, conditionJSON, action, paramsJSON string
	var active int
	var createdAt, updatedAt string

	err := scanner.Scan(
		&r.ID,
		&trigger,
		&conditionJSON,
		&action,
		&paramsJSON,
		&active,
		&r.Description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Trigger = TriggerType(trigger)
	r.Action = ActionType(action)
	r.Active = active != 0

	if err := json.Unmarshal([]byte(conditionJSON), &r.Condition); err != nil {
		return nil, fmt.Errorf("unmarshalling condition: %w", err)
	}
	if err := json.Unmarshal([]byte(paramsJSON), &r.Params); err != nil {
		return nil, fmt.Errorf("unmarshalling params: %w", err)
	}

	if t, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
		r.CreatedAt = t
	}
	if t, parseErr := time.Parse(time.RFC3339, updatedAt); parseErr == nil {
		r.UpdatedAt = t
	}
	return &r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
