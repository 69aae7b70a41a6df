package rooms

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger is the minimal logging interface the scheduler requires.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// workWeekDays is the span of a schedule view, Monday through Friday.
const workWeekDays = 5

// Scheduler manages meeting room bookings.
//
// Booking intervals are half-open: [start, end). The conflict check and
// insert happen under one lock, so two overlapping requests can never
// both succeed.
type Scheduler struct {
	mu          sync.Mutex
	repo        Repository
	maxDuration time.Duration
	logger      Logger
}

// NewScheduler creates a booking scheduler. A non-positive maxDuration
// disables the length limit. Logger may be nil.
func NewScheduler(repo Repository, maxDuration time.Duration, logger Logger) *Scheduler {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Scheduler{
		repo:        repo,
		maxDuration: maxDuration,
		logger:      logger,
	}
}

// ListRooms returns all rooms in display order.
func (s *Scheduler) ListRooms(ctx context.Context) ([]Room, error) {
	return s.repo.ListRooms(ctx)
}

// GetRoom returns a room by ID.
func (s *Scheduler) GetRoom(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetRoom(ctx, id)
}

// Book creates a booking on a room for the half-open interval
// [start, end). Returns ErrBookingConflict if the interval overlaps an
// existing booking; back-to-back bookings that touch at a boundary are
// allowed.
func (s *Scheduler) Book(ctx context.Context, roomID, username string, start, end time.Time) (*Booking, error) {
	start = start.UTC()
	end = end.UTC()

	if !end.After(start) {
		return nil, ErrInvalidInterval
	}
	if s.maxDuration > 0 && end.Sub(start) > s.maxDuration {
		return nil, ErrBookingTooLong
	}

	if _, err := s.repo.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conflicts, err := s.repo.ListBookingsInRange(ctx, roomID, start, end)
	if err != nil {
		return nil, fmt.Errorf("checking conflicts: %w", err)
	}
	if len(conflicts) > 0 {
		return nil, ErrBookingConflict
	}

	booking := &Booking{
		ID:       "bkg-" + uuid.NewString()[:8],
		RoomID:   roomID,
		Username: username,
		Start:    start,
		End:      end,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("creating booking: %w", err)
	}

	s.logger.Info("room booked",
		"booking_id", booking.ID,
		"room_id", roomID,
		"user", username,
		"start", start.Format(time.RFC3339),
	)
	return booking, nil
}

// Cancel removes a booking. Only the booking's owner may cancel it;
// administrators use ForceCancel.
func (s *Scheduler) Cancel(ctx context.Context, id, username string) error {
	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if !strings.EqualFold(booking.Username, username) {
		return ErrNotBookingOwner
	}
	if err := s.repo.DeleteBooking(ctx, id); err != nil {
		return err
	}
	s.logger.Info("booking cancelled", "booking_id", id, "user", username)
	return nil
}

// ForceCancel removes a booking regardless of owner.
func (s *Scheduler) ForceCancel(ctx context.Context, id string) error {
	if err := s.repo.DeleteBooking(ctx, id); err != nil {
		return err
	}
	s.logger.Info("booking force-cancelled", "booking_id", id)
	return nil
}

// WeekSchedule returns a room's bookings for the working week
// containing t, Monday 00:00 through Friday 24:00 UTC.
func (s *Scheduler) WeekSchedule(ctx context.Context, roomID string, t time.Time) ([]Booking, error) {
	if _, err := s.repo.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	start := WeekStart(t)
	end := start.AddDate(0, 0, workWeekDays)
	return s.repo.ListBookingsInRange(ctx, roomID, start, end)
}

// WeekOverview returns every room's bookings for the working week
// containing t, so a calendar view needs a single call rather than one
// per room.
func (s *Scheduler) WeekOverview(ctx context.Context, t time.Time) ([]Booking, error) {
	start := WeekStart(t)
	end := start.AddDate(0, 0, workWeekDays)
	return s.repo.ListAllBookingsInRange(ctx, start, end)
}

// Status reports whether a room is busy at time t, the booking holding
// it, and the next booking later that day.
func (s *Scheduler) Status(ctx context.Context, roomID string, t time.Time) (*RoomStatus, error) {
	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	t = t.UTC()
	dayEnd := t.Truncate(24 * time.Hour).AddDate(0, 0, 1)
	bookings, err := s.repo.ListBookingsInRange(ctx, roomID, t, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("querying bookings: %w", err)
	}

	status := &RoomStatus{Room: *room}
	for i := range bookings {
		b := bookings[i]
		if !b.Start.After(t) && b.End.After(t) {
			status.Busy = true
			status.Current = &b
			continue
		}
		if b.Start.After(t) && status.Next == nil {
			status.Next = &b
		}
	}
	return status, nil
}

// UserBookings returns a user's bookings that have not yet ended.
func (s *Scheduler) UserBookings(ctx context.Context, username string, now time.Time) ([]Booking, error) {
	return s.repo.ListBookingsByUser(ctx, username, now.UTC())
}

// WeekStart returns Monday 00:00 UTC of the week containing t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := t.Truncate(24 * time.Hour)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
