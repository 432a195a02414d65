package product

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Product, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id string) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Product) (Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt == "" {
		p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return s.repo.Create(p)
}

func (s *Service) Update(id string, p Product) (Product, error) {
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}

// Search filters the full catalog with a case-sensitive substring match over
// name and description. An empty query yields an empty result set, not the
// whole catalog; the storefront treats "no query" as "no results".
func (s *Service) Search(query string) ([]Product, error) {
	if query == "" {
		return []Product{}, nil
	}
	all, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0)
	for _, p := range all {
		if strings.Contains(p.Name, query) || strings.Contains(p.Description, query) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ResetProducts replaces all products with the given list (used for dev / seeding).
func (s *Service) ResetProducts(products []Product) error {
	for i := range products {
		if products[i].ID == "" {
			products[i].ID = uuid.NewString()
		}
		if products[i].CreatedAt == "" {
			products[i].CreatedAt = time.Now().UTC().Format(time.RFC3339)
		}
	}
	return s.repo.Reset(products)
}
