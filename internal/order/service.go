package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service provides business logic for orders.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// PlaceOrder creates the header and its lines as two sequential writes, the
// only shape the gateway contract offers. If the line insert fails the
// header is deleted again, so the store never keeps an order without items.
func (s *Service) PlaceOrder(ord Order, items []Item) (Order, error) {
	if ord.UserID == "" {
		return Order{}, errors.New("invalid user")
	}
	if len(items) == 0 {
		return Order{}, errors.New("order has no items")
	}

	if ord.ID == "" {
		ord.ID = uuid.NewString()
	}
	if ord.Status == "" {
		ord.Status = StatusPending
	}
	if ord.CreatedAt == "" {
		ord.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	created, err := s.repo.CreateOrder(ord)
	if err != nil {
		return Order{}, err
	}

	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		items[i].OrderID = created.ID
	}

	if err := s.repo.CreateItems(items); err != nil {
		if delErr := s.repo.DeleteOrder(created.ID); delErr != nil {
			fmt.Printf("warning: could not roll back order %s: %v\n", created.ID, delErr)
		}
		return Order{}, err
	}

	created.Items = items
	return created, nil
}

func (s *Service) ListByUser(userID string) ([]Order, error) {
	if userID == "" {
		return nil, errors.New("invalid user")
	}
	return s.repo.ListByUser(userID)
}

func (s *Service) ListAll() ([]Order, error) {
	return s.repo.ListAll()
}

// UpdateStatus moves an order to one of the known statuses; unknown values
// are rejected before touching the store.
func (s *Service) UpdateStatus(id string, status string) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatus(id, status)
}
