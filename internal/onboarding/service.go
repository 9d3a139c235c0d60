package onboarding

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the stored configuration, creating the default layout the
// first time it is read. The repository's guarded insert keeps concurrent
// first reads from producing two documents.
func (s *Service) Get() (Config, error) {
	cfg, err := s.repo.Get()
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Config{}, err
	}

	page2, page3 := DefaultLayout()
	now := time.Now().UTC()
	return s.repo.Create(Config{
		ID:        uuid.NewString(),
		Page2:     page2,
		Page3:     page3,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Save replaces both component lists wholesale after validating the
// page-placement invariants. Orders are renumbered 1..N by position, so the
// persisted lists always carry a contiguous sequence. Last writer wins;
// there is no version token on the document.
func (s *Service) Save(page2, page3 []Component) (Config, error) {
	if err := ValidateLayout(page2, page3); err != nil {
		return Config{}, err
	}

	cfg, err := s.Get()
	if err != nil {
		return Config{}, err
	}

	cfg.Page2 = append([]Component(nil), page2...)
	cfg.Page3 = append([]Component(nil), page3...)
	renumber(cfg.Page2)
	renumber(cfg.Page3)
	cfg.UpdatedAt = time.Now().UTC()

	return s.repo.Update(cfg)
}
