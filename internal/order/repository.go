package order

import (
	"errors"
	"sync"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrInvalidStatus = errors.New("unknown order status")
)

// Repository defines persistence operations for orders. Creating the header
// and the lines are separate calls on purpose: the gateway contract is plain
// table CRUD, so the service layer owns the compensation when the second
// write fails.
type Repository interface {
	CreateOrder(ord Order) (Order, error)
	CreateItems(items []Item) error
	// DeleteOrder removes an order and any of its items; used to compensate
	// a failed line insert.
	DeleteOrder(id string) error
	// ListByUser returns a user's orders newest first, items attached.
	ListByUser(userID string) ([]Order, error)
	// ListAll returns every order newest first, items attached.
	ListAll() ([]Order, error)
	UpdateStatus(id string, status string) error
}

// InMemoryRepository is used for tests and the local storefront binary.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
	items  []Item
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) CreateOrder(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord.Items = nil
	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) CreateItems(items []Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, items...)
	return nil
}

func (r *InMemoryRepository) DeleteOrder(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[:0]
	for _, it := range r.items {
		if it.OrderID != id {
			kept = append(kept, it)
		}
	}
	r.items = kept
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) ListByUser(userID string) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0)
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID == userID {
			out = append(out, r.withItems(r.orders[i]))
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListAll() ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		out = append(out, r.withItems(r.orders[i]))
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			return nil
		}
	}
	return ErrNotFound
}

// withItems attaches copies of an order's lines. Callers hold the lock.
func (r *InMemoryRepository) withItems(ord Order) Order {
	items := make([]Item, 0)
	for _, it := range r.items {
		if it.OrderID == ord.ID {
			items = append(items, it)
		}
	}
	ord.Items = items
	return ord
}
