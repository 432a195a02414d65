// Command shop walks through a full storefront session against in-memory
// backends: browse, favorite, fill the cart, and check out. Useful for
// exercising the device-side pieces without a database.
package main

import (
	"fmt"
	"os"

	"github.com/torshikhaneh/pickle-shop-backend/internal/cart"
	"github.com/torshikhaneh/pickle-shop-backend/internal/checkout"
	"github.com/torshikhaneh/pickle-shop-backend/internal/favorite"
	"github.com/torshikhaneh/pickle-shop-backend/internal/localstore"
	"github.com/torshikhaneh/pickle-shop-backend/internal/order"
	"github.com/torshikhaneh/pickle-shop-backend/internal/product"
	"github.com/torshikhaneh/pickle-shop-backend/internal/user"
)

// the loading splash shows once per session, not once per visit
const sessionKeyAppLoaded = "app-loaded"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	dir, err := os.MkdirTemp("", "pickle-shop-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	// device storage: the cart and favorites live in files and survive
	// restarts; the session flag lives in memory and does not
	store, err := localstore.NewFileStore(dir)
	if err != nil {
		return err
	}
	session := localstore.NewMemoryStore()

	var loaded bool
	if ok, err := session.Get(sessionKeyAppLoaded, &loaded); err != nil {
		return err
	} else if !ok {
		fmt.Println("… first visit this session, showing the loading screen")
		if err := session.Set(sessionKeyAppLoaded, true); err != nil {
			return err
		}
	}

	products := product.NewService(product.NewInMemoryRepository(nil))
	for _, p := range product.SampleCatalog() {
		if _, err := products.Create(p); err != nil {
			return err
		}
	}

	catalog, err := products.List()
	if err != nil {
		return err
	}
	fmt.Printf("catalog has %d jars:\n", len(catalog))
	for _, p := range catalog {
		fmt.Printf("  %-28s %8d (%s)\n", p.Name, p.Price, p.Weight)
	}

	basket, err := cart.NewManager(store, func(n cart.Notification) {
		marker := "+"
		if n.Destructive {
			marker = "-"
		}
		fmt.Printf("  [%s] %s: %s\n", marker, n.Title, n.Description)
	})
	if err != nil {
		return err
	}

	favorites, err := favorite.NewList(store)
	if err != nil {
		return err
	}

	fmt.Println("\nshopping:")
	if err := basket.Add(catalog[0]); err != nil {
		return err
	}
	if err := basket.Add(catalog[0]); err != nil {
		return err
	}
	if err := favorites.Add(catalog[1]); err != nil {
		return err
	}
	if err := favorites.AddAllToCart(basket); err != nil {
		return err
	}
	fmt.Printf("cart now holds %d lines, total %d\n", basket.Len(), basket.Total())

	users := user.NewService(user.NewInMemoryRepository(nil))
	me, err := users.Register(user.User{
		Email:    "maryam@example.com",
		Password: "hunter2",
		FullName: "Maryam Ahmadi",
	})
	if err != nil {
		return err
	}

	orders := order.NewService(order.NewInMemoryRepository())
	flow := checkout.NewFlow(orders)

	fmt.Println("\nchecking out:")
	placed, err := flow.Submit(me.ID, basket, checkout.Request{
		CustomerName:    me.FullName,
		CustomerPhone:   "09123456789",
		CustomerAddress: "Tehran, Valiasr St. 12",
		Notes:           "please pack the garlic jar separately",
	})
	if err != nil {
		return err
	}
	fmt.Printf("order %s placed (%s), total %d, %d lines\n", placed.ID, placed.Status, placed.TotalPrice, len(placed.Items))
	fmt.Printf("cart after checkout: %d lines\n", basket.Len())

	mine, err := orders.ListByUser(me.ID)
	if err != nil {
		return err
	}
	fmt.Printf("order history holds %d order(s), state %s\n", len(mine), flow.State())
	return nil
}
