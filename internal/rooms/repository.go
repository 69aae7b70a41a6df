package rooms

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Repository defines the interface for room and booking persistence.
// This abstraction allows different implementations (SQLite, mock, etc.)
// and enables unit testing without database dependencies.
type Repository interface {
	GetRoom(ctx context.Context, id string) (*Room, error)
	ListRooms(ctx context.Context) ([]Room, error)

	GetBooking(ctx context.Context, id string) (*Booking, error)
	CreateBooking(ctx context.Context, booking *Booking) error
	DeleteBooking(ctx context.Context, id string) error

	// ListBookingsInRange returns bookings on a room that overlap the
	// half-open interval [start, end), ordered by start time.
	ListBookingsInRange(ctx context.Context, roomID string, start, end time.Time) ([]Booking, error)

	// ListAllBookingsInRange is ListBookingsInRange across every room,
	// ordered by start time then room.
	ListAllBookingsInRange(ctx context.Context, start, end time.Time) ([]Booking, error)

	// ListBookingsByUser returns a user's bookings ending at or after
	// the given time, ordered by start time.
	ListBookingsByUser(ctx context.Context, username string, from time.Time) ([]Booking, error)
}

const bookingColumns = `id, room_id, username, start_time, end_time, created_at`

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// GetRoom retrieves a room by ID.
func (r *SQLiteRepository) GetRoom(ctx context.Context, id string) (*Room, error) {
	query := `SELECT id, name, capacity, sort_order FROM meeting_rooms WHERE id = ?`

	var room Room
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&room.ID, &room.Name, &room.Capacity, &room.SortOrder,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("querying room: %w", err)
	}
	return &room, nil
}

// ListRooms retrieves all rooms ordered by sort_order then name.
func (r *SQLiteRepository) ListRooms(ctx context.Context) ([]Room, error) {
	query := `SELECT id, name, capacity, sort_order FROM meeting_rooms ORDER BY sort_order, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying rooms: %w", err)
	}
	defer rows.Close()

	var rooms []Room
	for rows.Next() {
		var room Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity, &room.SortOrder); err != nil {
			return nil, fmt.Errorf("scanning room: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rooms: %w", err)
	}
	return rooms, nil
}

// GetBooking retrieves a booking by ID.
func (r *SQLiteRepository) GetBooking(ctx context.Context, id string) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM room_bookings WHERE id = ?`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("querying booking: %w", err)
	}
	return booking, nil
}

// CreateBooking inserts a new booking.
func (r *SQLiteRepository) CreateBooking(ctx context.Context, booking *Booking) error {
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO room_bookings (id, room_id, username, start_time, end_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.RoomID,
		booking.Username,
		booking.Start.UTC().Format(time.RFC3339),
		booking.End.UTC().Format(time.RFC3339),
		booking.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting booking: %w", err)
	}
	return nil
}

// DeleteBooking removes a booking by ID.
func (r *SQLiteRepository) DeleteBooking(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM room_bookings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting booking: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// ListBookingsInRange returns bookings on a room overlapping [start, end).
func (r *SQLiteRepository) ListBookingsInRange(ctx context.Context, roomID string, start, end time.Time) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + ` FROM room_bookings
		WHERE room_id = ? AND start_time < ? AND end_time > ?
		ORDER BY start_time`

	return r.queryBookings(ctx, query,
		roomID,
		end.UTC().Format(time.RFC3339),
		start.UTC().Format(time.RFC3339),
	)
}

// ListAllBookingsInRange returns bookings on any room overlapping
// [start, end).
func (r *SQLiteRepository) ListAllBookingsInRange(ctx context.Context, start, end time.Time) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + ` FROM room_bookings
		WHERE start_time < ? AND end_time > ?
		ORDER BY start_time, room_id`

	return r.queryBookings(ctx, query,
		end.UTC().Format(time.RFC3339),
		start.UTC().Format(time.RFC3339),
	)
}

// ListBookingsByUser returns a user's bookings ending at or after from.
func (r *SQLiteRepository) ListBookingsByUser(ctx context.Context, username string, from time.Time) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + ` FROM room_bookings
		WHERE username = ? COLLATE NOCASE AND end_time > ?
		ORDER BY start_time`

	return r.queryBookings(ctx, query, username, from.UTC().Format(time.RFC3339))
}

func (r *SQLiteRepository) queryBookings(ctx context.Context, query string, args ...any) ([]Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		booking, scanErr := scanBooking(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scanning booking: %w", scanErr)
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookings: %w", err)
	}
	return bookings, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(scanner rowScanner) (*Booking, error) {
	var b Booking
	var start, end, createdAt string

	if err := scanner.Scan(&b.ID, &b.RoomID, &b.Username, &start, &end, &createdAt); err != nil {
		return nil, err
	}

	if t, parseErr := time.Parse(time.RFC3339, start); parseErr == nil {
		b.Start = t
	}
	if t, parseErr := time.Parse(time.RFC3339, end); parseErr == nil {
		b.End = t
	}
	if t, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
		b.CreatedAt = t
	}
	return &b, nil
}
