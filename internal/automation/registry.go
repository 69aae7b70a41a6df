package automation

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Logger defines the logging interface used by the Registry and Engine.
// This allows different logging implementations to be used.
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

// Registry provides rule management with caching and thread safety.
// It wraps a Repository and adds an in-memory cache for fast lookups
// during event dispatch.
//
// The cache is populated on startup via RefreshCache() and kept in sync
// by cache-invalidating CRUD operations.
//
// All public methods are thread-safe.
type Registry struct {
	repo   Repository
	logger Logger

	// mutMu serializes read-modify-write mutations (create, toggle,
	// delete) so concurrent updates cannot interleave between the
	// repository write and the cache write-back.
	mutMu sync.Mutex

	cache   map[int64]*Rule
	cacheMu sync.RWMutex
}

// NewRegistry creates a new rule registry.
// The repository is used for persistence; the registry adds caching.
func NewRegistry(repo Repository) *Registry {
	return &Registry{
		repo:   repo,
		cache:  make(map[int64]*Rule),
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// RefreshCache reloads all rules from the repository into the cache.
// This should be called on application startup.
func (r *Registry) RefreshCache(ctx context.Context) error {
	rules, err := r.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}

	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()

	r.cache = make(map[int64]*Rule, len(rules))
	for i := range rules {
		rule := rules[i]
		r.cache[rule.ID] = rule.DeepCopy()
	}

	r.logger.Info("rule cache refreshed", "count", len(rules))
	return nil
}

// GetRule retrieves a rule by ID.
// The returned rule is a copy; callers can safely modify it.
func (r *Registry) GetRule(_ context.Context, id int64) (*Rule, error) {
	r.cacheMu.RLock()
	cached, ok := r.cache[id]
	r.cacheMu.RUnlock()

	if ok {
		return cached.DeepCopy(), nil
	}
	return nil, ErrRuleNotFound
}

// ListRules retrieves all rules from the cache in creation order
// (ascending ID). Dispatch relies on this ordering.
func (r *Registry) ListRules(_ context.Context) ([]Rule, error) {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()

	rules := make([]Rule, 0, len(r.cache))
	for _, rule := range r.cache {
		rules = append(rules, *rule.DeepCopy())
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules, nil
}

// CreateRule validates, persists, and caches a new rule. The assigned
// ID is written back to the argument.
func (r *Registry) CreateRule(ctx context.Context, rule *Rule) error {
	if err := ValidateRule(rule); err != nil {
		return err
	}

	r.mutMu.Lock()
	defer r.mutMu.Unlock()

	if err := r.repo.Create(ctx, rule); err != nil {
		return err
	}

	r.cacheMu.Lock()
	r.cache[rule.ID] = rule.DeepCopy()
	r.cacheMu.Unlock()

	r.logger.Info("rule created",
		"id", rule.ID,
		"trigger", rule.Trigger,
		"action", rule.Action,
		"description", rule.Description,
	)
	return nil
}

// ToggleRule flips a rule's active flag and returns the updated rule.
// The mutation lock is held from read to cache write-back, so two
// concurrent toggles always flip twice rather than collapsing into one.
func (r *Registry) ToggleRule(ctx context.Context, id int64) (*Rule, error) {
	r.mutMu.Lock()
	defer r.mutMu.Unlock()

	r.cacheMu.RLock()
	cached, ok := r.cache[id]
	r.cacheMu.RUnlock()
	if !ok {
		return nil, ErrRuleNotFound
	}

	updated := cached.DeepCopy()
	updated.Active = !updated.Active

	if err := r.repo.Update(ctx, updated); err != nil {
		return nil, err
	}

	r.cacheMu.Lock()
	r.cache[id] = updated.DeepCopy()
	r.cacheMu.Unlock()

	r.logger.Info("rule toggled", "id", id, "active", updated.Active)
	return updated, nil
}

// DeleteRule removes a rule from persistence and cache.
func (r *Registry) DeleteRule(ctx context.Context, id int64) error {
	r.mutMu.Lock()
	defer r.mutMu.Unlock()

	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	r.cacheMu.Lock()
	delete(r.cache, id)
	r.cacheMu.Unlock()

	r.logger.Info("rule deleted", "id", id)
	return nil
}

// GetRuleCount returns the number of cached rules.
func (r *Registry) GetRuleCount() int {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()
	return len(r.cache)
}
