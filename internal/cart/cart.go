package cart

import (
	"sync"

	"github.com/torshikhaneh/pickle-shop-backend/internal/localstore"
	"github.com/torshikhaneh/pickle-shop-backend/internal/product"
)

// storageKey is the fixed name the cart is persisted under, mirroring the
// storefront's device-local storage.
const storageKey = "cart"

// Item is a line in the cart: a product snapshot plus its quantity.
// Quantity is always >= 1; a line whose quantity would drop to zero is
// removed instead.
type Item struct {
	product.Product
	Quantity int `json:"quantity"`
}

// Notification is a user-facing message emitted on cart mutations.
type Notification struct {
	Title       string
	Description string
	Destructive bool
}

// Notifier receives cart notifications. A nil Notifier is silent.
type Notifier func(n Notification)

// Manager owns the cart state. All reads and writes go through it; nothing
// else touches the underlying storage key. Every mutation persists the full
// line list, so a reload reconstructs the cart exactly. Concurrent managers
// over the same store are last-write-wins, the same way two browser tabs
// would be.
type Manager struct {
	mu     sync.Mutex
	store  localstore.Store
	notify Notifier
	items  []Item
}

// NewManager hydrates the cart from the store if a document is present,
// otherwise starts empty.
func NewManager(store localstore.Store, notify Notifier) (*Manager, error) {
	m := &Manager{store: store, notify: notify}
	if _, err := store.Get(storageKey, &m.items); err != nil {
		return nil, err
	}
	return m, nil
}

// Add merges by product id: an existing line gains one unit, otherwise a new
// line with quantity 1 is appended.
func (m *Manager) Add(p product.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ID == p.ID {
			m.items[i].Quantity++
			if err := m.persist(); err != nil {
				return err
			}
			m.emit(Notification{Title: "Quantity increased", Description: p.Name, Destructive: false})
			return nil
		}
	}

	m.items = append(m.items, Item{Product: p, Quantity: 1})
	if err := m.persist(); err != nil {
		return err
	}
	m.emit(Notification{Title: "Added to cart", Description: p.Name, Destructive: false})
	return nil
}

// SetQuantity sets a line's quantity. n <= 0 removes the line entirely. No
// upper bound is enforced.
func (m *Manager) SetQuantity(id string, n int) error {
	if n <= 0 {
		return m.Remove(id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Quantity = n
			return m.persist()
		}
	}
	return nil
}

// Remove drops a line unconditionally.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			name := m.items[i].Name
			m.items = append(m.items[:i], m.items[i+1:]...)
			if err := m.persist(); err != nil {
				return err
			}
			m.emit(Notification{Title: "Removed from cart", Description: name, Destructive: true})
			return nil
		}
	}
	return nil
}

// Total is the sum of price*quantity over all lines, recomputed on every
// call.
func (m *Manager) Total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum := 0
	for _, it := range m.items {
		sum += it.Price * it.Quantity
	}
	return sum
}

// Clear empties the cart; the checkout flow calls it after a successful
// order submission.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	return m.persist()
}

// Items returns a copy of the current lines.
func (m *Manager) Items() []Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// persist writes the full line list under the fixed storage key. Callers
// hold the lock.
func (m *Manager) persist() error {
	items := m.items
	if items == nil {
		items = []Item{}
	}
	return m.store.Set(storageKey, items)
}

func (m *Manager) emit(n Notification) {
	if m.notify != nil {
		m.notify(n)
	}
}
