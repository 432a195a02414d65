package user

import (
	"errors"
	"sync"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Repository interface {
	GetByID(id string) (User, error)
	GetByEmail(email string) (User, error)
	Create(u User) (User, error)
	UpdateFullName(id string, fullName string) (User, error)
	// HasRole reports whether a role row exists for the user.
	HasRole(userID string, role string) (bool, error)
	GrantRole(userID string, role string) error
}

// InMemoryRepository is used for tests and the local storefront binary.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users []User
	roles map[string][]string
}

func NewInMemoryRepository(seed []User) *InMemoryRepository {
	r := &InMemoryRepository{
		users: make([]User, 0, len(seed)),
		roles: make(map[string][]string),
	}
	r.users = append(r.users, seed...)
	return r
}

func (r *InMemoryRepository) GetByID(id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Create(u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, u)
	return u, nil
}

func (r *InMemoryRepository) UpdateFullName(id string, fullName string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].FullName = fullName
			return r.users[i], nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) HasRole(userID string, role string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, have := range r.roles[userID] {
		if have == role {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryRepository) GrantRole(userID string, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, have := range r.roles[userID] {
		if have == role {
			return nil
		}
	}
	r.roles[userID] = append(r.roles[userID], role)
	return nil
}
