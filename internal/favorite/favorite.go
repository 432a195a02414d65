package favorite

import (
	"errors"
	"sync"

	"github.com/torshikhaneh/pickle-shop-backend/internal/cart"
	"github.com/torshikhaneh/pickle-shop-backend/internal/localstore"
	"github.com/torshikhaneh/pickle-shop-backend/internal/product"
)

// Favorites live next to the cart in device-local storage. They hold product
// snapshots, are never sent to the server and do not sync across devices.
const storageKey = "favorites"

var (
	ErrAlreadyFavorite = errors.New("product already in favorites")
	ErrNotFavorite     = errors.New("product not in favorites")
)

// List owns the favorites state the way cart.Manager owns the cart.
type List struct {
	mu    sync.Mutex
	store localstore.Store
	items []product.Product
}

func NewList(store localstore.Store) (*List, error) {
	l := &List{store: store}
	if _, err := store.Get(storageKey, &l.items); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *List) Add(p product.Product) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, it := range l.items {
		if it.ID == p.ID {
			return ErrAlreadyFavorite
		}
	}
	l.items = append(l.items, p)
	return l.persist()
}

func (l *List) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		if l.items[i].ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return l.persist()
		}
	}
	return ErrNotFavorite
}

// Toggle adds the product when absent and removes it when present, the way
// the product page's heart button behaves. It reports whether the product is
// a favorite afterwards.
func (l *List) Toggle(p product.Product) (bool, error) {
	if l.Contains(p.ID) {
		return false, l.Remove(p.ID)
	}
	return true, l.Add(p)
}

func (l *List) Contains(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, it := range l.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func (l *List) Items() []product.Product {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]product.Product, len(l.items))
	copy(out, l.items)
	return out
}

// AddAllToCart pushes every favorite into the cart with the cart's own
// merge-by-id semantics.
func (l *List) AddAllToCart(m *cart.Manager) error {
	for _, p := range l.Items() {
		if err := m.Add(p); err != nil {
			return err
		}
	}
	return nil
}

func (l *List) persist() error {
	items := l.items
	if items == nil {
		items = []product.Product{}
	}
	return l.store.Set(storageKey, items)
}
