package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]User, error) {
	return s.repo.List()
}

func (s *Service) GetByEmail(email string) (User, error) {
	return s.repo.GetByEmail(NormalizeEmail(email))
}

// Create registers a participant at step 1. The email is normalized before
// the uniqueness check so "A@B.com " and "a@b.com" name the same record.
func (s *Service) Create(email, password string) (User, error) {
	email = NormalizeEmail(email)
	if _, err := s.repo.GetByEmail(email); err == nil {
		return User{}, ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	now := time.Now().UTC()
	return s.repo.Create(User{
		ID:          uuid.NewString(),
		Email:       email,
		Password:    password,
		CurrentStep: 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// Update merges the partial payload into the stored record and bumps
// updatedAt. Unset fields keep their stored values.
func (s *Service) Update(email string, upd Update) (User, error) {
	existing, err := s.GetByEmail(email)
	if err != nil {
		return User{}, err
	}

	if upd.Email != nil && *upd.Email != "" {
		existing.Email = NormalizeEmail(*upd.Email)
	}
	if upd.Password != nil && *upd.Password != "" {
		existing.Password = *upd.Password
	}
	if upd.AboutMe != nil {
		existing.AboutMe = *upd.AboutMe
	}
	if upd.Address != nil {
		existing.Address = *upd.Address
	}
	if upd.Birthdate != nil {
		birthdate := *upd.Birthdate
		existing.Birthdate = &birthdate
	}
	if upd.CurrentStep != nil {
		existing.CurrentStep = *upd.CurrentStep
	}
	existing.UpdatedAt = time.Now().UTC()

	return s.repo.Update(NormalizeEmail(email), existing)
}

func (s *Service) Delete(email string) error {
	return s.repo.Delete(NormalizeEmail(email))
}

// DeleteAll removes every record with one independent delete per record,
// the shape the data table's "delete all" action produces. There is no
// atomicity across the batch: a failure partway leaves the earlier deletes
// in place, and each failure is reported.
func (s *Service) DeleteAll() (int, error) {
	users, err := s.repo.List()
	if err != nil {
		return 0, err
	}

	deleted := 0
	var errs []error
	for _, u := range users {
		if err := s.repo.Delete(u.Email); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", u.Email, err))
			continue
		}
		deleted++
	}
	return deleted, errors.Join(errs...)
}
