package wellness

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Logger is the minimal logging interface the service requires.
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

// Service validates and stores wellness check-ins.
type Service struct {
	repo   Repository
	logger Logger
}

// NewService creates the wellness service. Logger may be nil.
func NewService(repo Repository, logger Logger) *Service {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Service{repo: repo, logger: logger}
}

// CheckIn validates the scores, stores the record and returns it with
// its computed advice.
func (s *Service) CheckIn(ctx context.Context, username string, mood, energy, stress int) (*Checkin, error) {
	if username == "" {
		return nil, ErrMissingUsername
	}
	for _, score := range []int{mood, energy, stress} {
		if score < MinScore || score > MaxScore {
			return nil, ErrInvalidScore
		}
	}

	checkin := &Checkin{
		ID:       "wel-" + uuid.NewString()[:8],
		Username: username,
		Mood:     mood,
		Energy:   energy,
		Stress:   stress,
		Advice:   adviceFor(mood, energy, stress),
	}

	if err := s.repo.Create(ctx, checkin); err != nil {
		return nil, fmt.Errorf("storing checkin: %w", err)
	}

	s.logger.Info("wellness checkin recorded",
		"username", username,
		"mood", mood,
		"energy", energy,
		"stress", stress,
	)
	return checkin, nil
}

// History returns a user's recent check-ins, most recent first.
func (s *Service) History(ctx context.Context, username string, limit int) ([]Checkin, error) {
	if username == "" {
		return nil, ErrMissingUsername
	}
	return s.repo.ListByUser(ctx, username, limit)
}
