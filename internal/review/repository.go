package review

import (
	"errors"
	"sync"
)

var (
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

type Repository interface {
	Create(rv Review) (Review, error)
	// ListByProduct returns a product's reviews newest first, each with the
	// reviewer's display name attached.
	ListByProduct(productID string) ([]Review, error)
}

// InMemoryRepository is used for tests and the local storefront binary. The
// names map stands in for the profiles join.
type InMemoryRepository struct {
	mu      sync.RWMutex
	reviews []Review
	names   map[string]string
}

func NewInMemoryRepository(names map[string]string) *InMemoryRepository {
	if names == nil {
		names = map[string]string{}
	}
	return &InMemoryRepository{names: names}
}

func (r *InMemoryRepository) Create(rv Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = append(r.reviews, rv)
	return rv, nil
}

func (r *InMemoryRepository) ListByProduct(productID string) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Review, 0)
	for i := len(r.reviews) - 1; i >= 0; i-- {
		rv := r.reviews[i]
		if rv.ProductID != productID {
			continue
		}
		if name, ok := r.names[rv.UserID]; ok {
			rv.ReviewerName = &name
		}
		out = append(out, rv)
	}
	return out, nil
}
