package checkout

import (
	"errors"
	"fmt"

	"github.com/torshikhaneh/pickle-shop-backend/internal/cart"
	"github.com/torshikhaneh/pickle-shop-backend/internal/order"
)

// State is where the submission flow currently stands. The flow moves
// Idle -> Validating -> Submitting -> Success | Failed; every failure path
// leaves the flow reusable, so Submit may be called again.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrNotSignedIn blocks submission when no authenticated session exists.
var ErrNotSignedIn = errors.New("sign in before placing an order")

// ValidationError names a required contact field that was left empty. It is
// raised before any gateway call, so the cart stays untouched.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// Request carries the delivery and contact fields from the order form.
type Request struct {
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerAddress string `json:"customer_address"`
	Notes           string `json:"notes"`
}

// Basket is the cart view the flow consumes. *cart.Manager implements it;
// the HTTP handler adapts submitted lines to it.
type Basket interface {
	Items() []cart.Item
	Total() int
	Clear() error
}

// OrderPlacer is satisfied by *order.Service.
type OrderPlacer interface {
	PlaceOrder(ord order.Order, items []order.Item) (order.Order, error)
}

// Flow runs one order submission at a time. Callers that submit
// concurrently should use one Flow per submission.
type Flow struct {
	placer OrderPlacer
	state  State
}

func NewFlow(placer OrderPlacer) *Flow {
	return &Flow{placer: placer, state: StateIdle}
}

func (f *Flow) State() State {
	return f.state
}

// Submit validates the request, requires a session, snapshots the basket
// into an order and places it. On success the basket is cleared. The order
// total is the basket total at this moment; it is stored as a snapshot and
// never reconciled later.
func (f *Flow) Submit(userID string, basket Basket, req Request) (order.Order, error) {
	f.state = StateValidating
	if field, ok := missingField(req); ok {
		f.state = StateIdle
		return order.Order{}, &ValidationError{Field: field}
	}

	f.state = StateSubmitting
	if userID == "" {
		f.state = StateIdle
		return order.Order{}, ErrNotSignedIn
	}

	lines := basket.Items()
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		items = append(items, order.Item{
			ProductID:     line.ID,
			ProductName:   line.Name,
			ProductPrice:  line.Price,
			ProductWeight: line.Weight,
			Quantity:      line.Quantity,
		})
	}

	ord := order.Order{
		UserID:          userID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		TotalPrice:      basket.Total(),
		Status:          order.StatusPending,
	}
	if req.Notes != "" {
		notes := req.Notes
		ord.Notes = &notes
	}

	created, err := f.placer.PlaceOrder(ord, items)
	if err != nil {
		f.state = StateFailed
		return order.Order{}, err
	}

	if err := basket.Clear(); err != nil {
		// the order went through; a stale local cart is the lesser problem
		fmt.Printf("warning: could not clear cart after order %s: %v\n", created.ID, err)
	}
	f.state = StateSuccess
	return created, nil
}

func missingField(req Request) (string, bool) {
	switch {
	case req.CustomerName == "":
		return "customer_name", true
	case req.CustomerPhone == "":
		return "customer_phone", true
	case req.CustomerAddress == "":
		return "customer_address", true
	}
	return "", false
}
