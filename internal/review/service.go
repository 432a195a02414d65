package review

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

func (s *Service) Create(rv Review) (Review, error) {
	if rv.UserID == "" {
		return Review{}, errors.New("invalid user")
	}
	if rv.ProductID == "" {
		return Review{}, errors.New("invalid product")
	}
	if rv.Rating < 1 || rv.Rating > 5 {
		return Review{}, ErrInvalidRating
	}

	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	if rv.CreatedAt == "" {
		rv.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return s.repo.Create(rv)
}

func (s *Service) ListByProduct(productID string) ([]Review, error) {
	return s.repo.ListByProduct(productID)
}
