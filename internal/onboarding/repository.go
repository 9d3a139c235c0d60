package onboarding

import (
	"errors"
	"sync"
)

// ErrNotFound is returned when the singleton configuration document is
// absent.
var ErrNotFound = errors.New("onboarding configuration not found")

// Repository stores the singleton onboarding configuration document.
type Repository interface {
	Get() (Config, error)
	// Create inserts the document only when none exists yet. When another
	// writer wins the race the stored document is returned instead, so two
	// concurrent first reads never produce two documents.
	Create(cfg Config) (Config, error)
	Update(cfg Config) (Config, error)
}

type InMemoryRepository struct {
	mu  sync.RWMutex
	cfg *Config
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Get() (Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.cfg == nil {
		return Config{}, ErrNotFound
	}
	return r.cfg.Clone(), nil
}

func (r *InMemoryRepository) Create(cfg Config) (Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cfg != nil {
		return r.cfg.Clone(), nil
	}
	stored := cfg.Clone()
	r.cfg = &stored
	return stored.Clone(), nil
}

func (r *InMemoryRepository) Update(cfg Config) (Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cfg == nil {
		return Config{}, ErrNotFound
	}
	cfg.ID = r.cfg.ID
	cfg.CreatedAt = r.cfg.CreatedAt
	stored := cfg.Clone()
	r.cfg = &stored
	return stored.Clone(), nil
}
