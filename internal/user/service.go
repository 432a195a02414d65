package user

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id string) (User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Register(u User) (User, error) {
	if _, err := s.repo.GetByEmail(u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u.Password = string(hashed)

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt == "" {
		u.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return s.repo.Create(u)
}

func (s *Service) Authenticate(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) UpdateFullName(id string, fullName string) (User, error) {
	return s.repo.UpdateFullName(id, fullName)
}

// Authorize is the single role-gate query. Every gated view consumes the
// returned capability instead of repeating the session-then-role lookup.
func (s *Service) Authorize(userID string) (Capability, error) {
	if userID == "" {
		return Capability{}, nil
	}
	if _, err := s.repo.GetByID(userID); err != nil {
		if err == ErrNotFound {
			return Capability{}, nil
		}
		return Capability{}, err
	}

	isAdmin, err := s.repo.HasRole(userID, RoleAdmin)
	if err != nil {
		return Capability{}, err
	}
	return Capability{Authenticated: true, IsAdmin: isAdmin}, nil
}

// GrantAdmin records the admin role for a user; used by startup provisioning.
func (s *Service) GrantAdmin(userID string) error {
	return s.repo.GrantRole(userID, RoleAdmin)
}

// GetByEmail is exposed for startup provisioning of the admin account.
func (s *Service) GetByEmail(email string) (User, error) {
	return s.repo.GetByEmail(email)
}
