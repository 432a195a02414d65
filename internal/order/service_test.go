package order

import (
	"errors"
	"testing"

	"github.com/torshikhaneh/pickle-shop-backend/internal/product"
)

// failingRepo wraps the in-memory repository and fails the line insert, so
// the compensation path can be observed.
type failingRepo struct {
	*InMemoryRepository
	itemsErr error
	deleted  []string
}

func (r *failingRepo) CreateItems(items []Item) error {
	if r.itemsErr != nil {
		return r.itemsErr
	}
	return r.InMemoryRepository.CreateItems(items)
}

func (r *failingRepo) DeleteOrder(id string) error {
	r.deleted = append(r.deleted, id)
	return r.InMemoryRepository.DeleteOrder(id)
}

func sampleOrder() Order {
	return Order{
		UserID:          "user-1",
		CustomerName:    "Maryam Ahmadi",
		CustomerPhone:   "09123456789",
		CustomerAddress: "Tehran, Valiasr St. 12",
		TotalPrice:      2500,
	}
}

func sampleItems() []Item {
	return []Item{
		{ProductID: "a", ProductName: "Mixed Vegetable Pickle", ProductPrice: 1000, ProductWeight: "700 g", Quantity: 2},
		{ProductID: "b", ProductName: "Cucumber Pickle", ProductPrice: 500, ProductWeight: "650 g", Quantity: 1},
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	created, err := svc.PlaceOrder(sampleOrder(), sampleItems())
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if created.ID == "" || created.CreatedAt == "" {
		t.Fatalf("expected generated id and timestamp, got %+v", created)
	}
	if created.Status != StatusPending {
		t.Fatalf("expected pending, got %q", created.Status)
	}
	for _, it := range created.Items {
		if it.OrderID != created.ID {
			t.Fatalf("item not bound to order: %+v", it)
		}
		if it.ID == "" {
			t.Fatalf("expected generated item id")
		}
	}
}

func TestPlaceOrder_CompensatesFailedLineInsert(t *testing.T) {
	repo := &failingRepo{
		InMemoryRepository: NewInMemoryRepository(),
		itemsErr:           errors.New("permission denied for table order_items"),
	}
	svc := NewService(repo)

	_, err := svc.PlaceOrder(sampleOrder(), sampleItems())
	if err == nil || err.Error() != "permission denied for table order_items" {
		t.Fatalf("expected raw line-insert error, got %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Fatalf("expected one compensating delete, got %d", len(repo.deleted))
	}

	// the store must not keep a headerless order
	all, _ := repo.ListAll()
	if len(all) != 0 {
		t.Fatalf("expected no orders after rollback, got %d", len(all))
	}
}

func TestPlaceOrder_RejectsEmptyInput(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	if _, err := svc.PlaceOrder(Order{}, sampleItems()); err == nil {
		t.Fatalf("expected error for missing user")
	}
	if _, err := svc.PlaceOrder(sampleOrder(), nil); err == nil {
		t.Fatalf("expected error for empty items")
	}
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo)
	created, _ := svc.PlaceOrder(sampleOrder(), sampleItems())

	if err := svc.UpdateStatus(created.ID, "returned"); err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if err := svc.UpdateStatus(created.ID, StatusShipped); err != nil {
		t.Fatalf("valid status rejected: %v", err)
	}
	all, _ := svc.ListAll()
	if all[0].Status != StatusShipped {
		t.Fatalf("status not applied: %q", all[0].Status)
	}
}

func TestListAll_NewestFirstWithItems(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	first, _ := svc.PlaceOrder(sampleOrder(), sampleItems())
	second, _ := svc.PlaceOrder(sampleOrder(), sampleItems()[:1])

	all, err := svc.ListAll()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(all))
	}
	if all[0].ID != second.ID || all[1].ID != first.ID {
		t.Fatalf("expected newest-first ordering")
	}
	if len(all[0].Items) != 1 || len(all[1].Items) != 2 {
		t.Fatalf("items not attached correctly: %d/%d", len(all[0].Items), len(all[1].Items))
	}
}

// Deleting a product from the catalog must leave historical order line
// snapshots untouched; the line carries copies, not references.
func TestProductDeletion_LeavesSnapshotsIntact(t *testing.T) {
	products := product.NewInMemoryRepository([]product.Product{
		{ID: "a", Name: "Mixed Vegetable Pickle", Price: 1000, Weight: "700 g"},
	})
	svc := NewService(NewInMemoryRepository())

	p, _ := products.GetByID("a")
	_, err := svc.PlaceOrder(sampleOrder(), []Item{{
		ProductID:     p.ID,
		ProductName:   p.Name,
		ProductPrice:  p.Price,
		ProductWeight: p.Weight,
		Quantity:      2,
	}})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	if err := products.Delete("a"); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	mine, _ := svc.ListByUser("user-1")
	if len(mine) != 1 {
		t.Fatalf("expected the order to survive, got %d", len(mine))
	}
	it := mine[0].Items[0]
	if it.ProductName != "Mixed Vegetable Pickle" || it.ProductPrice != 1000 || it.ProductWeight != "700 g" {
		t.Fatalf("snapshot altered by product deletion: %+v", it)
	}
}
