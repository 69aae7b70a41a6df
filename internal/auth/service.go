package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/officegrid/officegrid-core/internal/events"
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

// Publisher receives facility events. The event bus satisfies this.
type Publisher interface {
	Publish(ctx context.Context, ev events.Event) bool
}

// noopPublisher drops all events.
type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, events.Event) bool { return false }

// Service implements user management and login on top of the repository.
//
// All username matching is case-insensitive; the stored username keeps
// its original casing and is the one reported in events and tokens.
type Service struct {
	repo      UserRepository
	publisher Publisher
	logger    Logger

	jwtSecret  string
	ttlMinutes int
}

// NewService creates the auth service. Publisher and logger may be nil.
func NewService(repo UserRepository, publisher Publisher, jwtSecret string, ttlMinutes int, logger Logger) *Service {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &Service{
		repo:       repo,
		publisher:  publisher,
		logger:     logger,
		jwtSecret:  jwtSecret,
		ttlMinutes: ttlMinutes,
	}
}

// LoginResult carries the outcome of a successful login.
type LoginResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Login verifies credentials and issues an access token.
// A successful login publishes a user_login facility event.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.logger.Warn("failed login attempt", "username", username)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		s.logger.Warn("failed login attempt", "username", username)
		return nil, ErrInvalidCredentials
	}

	token, err := GenerateAccessToken(user, s.jwtSecret, s.ttlMinutes)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "username", user.Username, "role", user.Role)
	s.publisher.Publish(ctx, events.UserLogin(user.Username))

	return &LoginResult{User: user, Token: token}, nil
}

// CreateUser creates an account with the given role.
func (s *Service) CreateUser(ctx context.Context, username, password string, role Role) (*User, error) {
	if !IsValidUsername(username) {
		return nil, ErrInvalidUsername
	}
	if !IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", "username", username, "role", role)
	return user, nil
}

// SetRole changes a user's role. Demoting the last admin is rejected.
func (s *Service) SetRole(ctx context.Context, username string, role Role) error {
	if !IsValidRole(role) {
		return ErrInvalidRole
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if user.Role == RoleAdmin && role != RoleAdmin {
		admins, err := s.repo.CountByRole(ctx, RoleAdmin)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}

	if err := s.repo.UpdateRole(ctx, user.Username, role); err != nil {
		return err
	}

	s.logger.Info("user role changed", "username", user.Username, "role", role)
	return nil
}

// ChangePassword sets a new password for the user.
func (s *Service) ChangePassword(ctx context.Context, username, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, username, hash); err != nil {
		return err
	}

	s.logger.Info("user password changed", "username", username)
	return nil
}

// DeleteUser removes an account. Admins cannot delete themselves, and
// the last admin cannot be deleted.
func (s *Service) DeleteUser(ctx context.Context, username, actor string) error {
	if strings.EqualFold(username, actor) {
		return ErrSelfDeletion
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if user.Role == RoleAdmin {
		admins, err := s.repo.CountByRole(ctx, RoleAdmin)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}

	if err := s.repo.Delete(ctx, user.Username); err != nil {
		return err
	}

	s.logger.Info("user deleted", "username", user.Username, "deleted_by", actor)
	return nil
}

// ListUsers returns all accounts.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// GetUser returns a single account by username.
func (s *Service) GetUser(ctx context.Context, username string) (*User, error) {
	return s.repo.GetByUsername(ctx, username)
}
