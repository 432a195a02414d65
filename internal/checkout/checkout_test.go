package checkout

import (
	"errors"
	"testing"

	"github.com/torshikhaneh/pickle-shop-backend/internal/cart"
	"github.com/torshikhaneh/pickle-shop-backend/internal/localstore"
	"github.com/torshikhaneh/pickle-shop-backend/internal/order"
	"github.com/torshikhaneh/pickle-shop-backend/internal/product"
)

var (
	jarA = product.Product{ID: "a", Name: "Mixed Vegetable Pickle", Price: 1000, Weight: "700 g"}
	jarB = product.Product{ID: "b", Name: "Cucumber Pickle", Price: 500, Weight: "650 g"}
)

// countingPlacer records every call that reaches the gateway.
type countingPlacer struct {
	calls int
	fail  error
	last  order.Order
	items []order.Item
}

func (p *countingPlacer) PlaceOrder(ord order.Order, items []order.Item) (order.Order, error) {
	p.calls++
	if p.fail != nil {
		return order.Order{}, p.fail
	}
	ord.ID = "order-1"
	p.last = ord
	p.items = items
	return ord, nil
}

func seededBasket(t *testing.T) *cart.Manager {
	t.Helper()
	basket, err := cart.NewManager(localstore.NewMemoryStore(), nil)
	if err != nil {
		t.Fatalf("new cart: %v", err)
	}
	basket.Add(jarA)
	basket.Add(jarA)
	basket.Add(jarB)
	return basket
}

func validRequest() Request {
	return Request{
		CustomerName:    "Maryam Ahmadi",
		CustomerPhone:   "09123456789",
		CustomerAddress: "Tehran, Valiasr St. 12",
		Notes:           "ring the upper bell",
	}
}

func TestSubmit_MissingFieldNeverReachesGateway(t *testing.T) {
	for _, tc := range []struct {
		field string
		req   Request
	}{
		{"customer_name", Request{CustomerPhone: "0912", CustomerAddress: "addr"}},
		{"customer_phone", Request{CustomerName: "n", CustomerAddress: "addr"}},
		{"customer_address", Request{CustomerName: "n", CustomerPhone: "0912"}},
	} {
		placer := &countingPlacer{}
		flow := NewFlow(placer)
		basket := seededBasket(t)
		linesBefore := basket.Items()

		_, err := flow.Submit("user-1", basket, tc.req)
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != tc.field {
			t.Fatalf("expected validation error on %s, got %v", tc.field, err)
		}
		if placer.calls != 0 {
			t.Fatalf("gateway must not be contacted on validation failure")
		}
		if flow.State() != StateIdle {
			t.Fatalf("expected flow back in idle, got %s", flow.State())
		}
		after := basket.Items()
		if len(after) != len(linesBefore) {
			t.Fatalf("cart changed on validation failure")
		}
	}
}

func TestSubmit_RequiresSession(t *testing.T) {
	placer := &countingPlacer{}
	flow := NewFlow(placer)
	basket := seededBasket(t)

	_, err := flow.Submit("", basket, validRequest())
	if !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
	if placer.calls != 0 {
		t.Fatalf("gateway must not be contacted without a session")
	}
	if basket.Len() != 2 {
		t.Fatalf("cart must stay intact without a session")
	}
}

func TestSubmit_SnapshotsCartAndClearsIt(t *testing.T) {
	placer := &countingPlacer{}
	flow := NewFlow(placer)
	basket := seededBasket(t) // {A: qty 2 @ 1000, B: qty 1 @ 500}

	created, err := flow.Submit("user-1", basket, validRequest())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if created.TotalPrice != 2500 {
		t.Fatalf("expected total_price 2500, got %d", created.TotalPrice)
	}
	if created.Status != order.StatusPending {
		t.Fatalf("expected pending status, got %q", created.Status)
	}
	if placer.last.Notes == nil || *placer.last.Notes != "ring the upper bell" {
		t.Fatalf("notes not carried: %+v", placer.last.Notes)
	}

	if len(placer.items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(placer.items))
	}
	byProduct := map[string]order.Item{}
	for _, it := range placer.items {
		byProduct[it.ProductID] = it
	}
	a := byProduct["a"]
	if a.ProductName != jarA.Name || a.ProductPrice != 1000 || a.ProductWeight != "700 g" || a.Quantity != 2 {
		t.Fatalf("jar A snapshot wrong: %+v", a)
	}
	b := byProduct["b"]
	if b.ProductPrice != 500 || b.Quantity != 1 {
		t.Fatalf("jar B snapshot wrong: %+v", b)
	}

	if basket.Len() != 0 {
		t.Fatalf("cart should be empty after a successful order")
	}
	if flow.State() != StateSuccess {
		t.Fatalf("expected success state, got %s", flow.State())
	}
}

func TestSubmit_GatewayErrorSurfacedRaw(t *testing.T) {
	gatewayErr := errors.New("permission denied for table orders")
	placer := &countingPlacer{fail: gatewayErr}
	flow := NewFlow(placer)
	basket := seededBasket(t)

	_, err := flow.Submit("user-1", basket, validRequest())
	if !errors.Is(err, gatewayErr) {
		t.Fatalf("expected raw gateway error, got %v", err)
	}
	if flow.State() != StateFailed {
		t.Fatalf("expected failed state, got %s", flow.State())
	}
	if basket.Len() != 2 {
		t.Fatalf("cart must survive a failed submission")
	}

	// the flow stays usable; a retry succeeds
	placer.fail = nil
	if _, err := flow.Submit("user-1", basket, validRequest()); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if flow.State() != StateSuccess {
		t.Fatalf("expected success after retry, got %s", flow.State())
	}
}

func TestSubmit_EndToEndWithOrderService(t *testing.T) {
	repo := order.NewInMemoryRepository()
	svc := order.NewService(repo)
	flow := NewFlow(svc)
	basket := seededBasket(t)

	created, err := flow.Submit("user-1", basket, validRequest())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated order id")
	}

	mine, err := svc.ListByUser("user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 || len(mine[0].Items) != 2 {
		t.Fatalf("expected one order with two items, got %+v", mine)
	}
}
