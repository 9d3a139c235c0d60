package user

import (
	"errors"
	"sync"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("email already exists")
)

// Repository stores onboarding participants keyed by their unique email.
type Repository interface {
	List() ([]User, error)
	GetByEmail(email string) (User, error)
	Create(u User) (User, error)
	Update(email string, u User) (User, error)
	Delete(email string) error
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	users []User
}

func NewInMemoryRepository(seed []User) *InMemoryRepository {
	repo := &InMemoryRepository{users: make([]User, 0, len(seed))}
	repo.users = append(repo.users, seed...)
	return repo
}

func (r *InMemoryRepository) List() ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]User, len(r.users))
	copy(users, r.users)
	return users, nil
}

func (r *InMemoryRepository) GetByEmail(email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(email); i >= 0 {
		return r.users[i], nil
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Create(u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(u.Email) >= 0 {
		return User{}, ErrEmailExists
	}
	r.users = append(r.users, u)
	return u, nil
}

func (r *InMemoryRepository) Update(email string, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(email)
	if i < 0 {
		return User{}, ErrNotFound
	}
	if j := r.indexOf(u.Email); j >= 0 && j != i {
		return User{}, ErrEmailExists
	}
	r.users[i] = u
	return u, nil
}

func (r *InMemoryRepository) Delete(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(email)
	if i < 0 {
		return ErrNotFound
	}
	r.users = append(r.users[:i], r.users[i+1:]...)
	return nil
}

// indexOf expects r.mu held.
func (r *InMemoryRepository) indexOf(email string) int {
	email = NormalizeEmail(email)
	for i, u := range r.users {
		if NormalizeEmail(u.Email) == email {
			return i
		}
	}
	return -1
}
