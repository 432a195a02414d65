package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/torshikhaneh/pickle-shop-backend/internal/cart"
	"github.com/torshikhaneh/pickle-shop-backend/internal/product"
	"github.com/torshikhaneh/pickle-shop-backend/internal/user"
)

// Handler accepts order submissions from the storefront. The device owns the
// cart, so the payload carries the lines; the flow snapshots them into an
// order exactly as it would from a local cart manager.
type Handler struct {
	placer OrderPlacer
}

func NewHandler(placer OrderPlacer) *Handler {
	return &Handler{placer: placer}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/orders", h.createOrder)
}

type lineItemPayload struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Weight    string `json:"weight"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	Request
	Items []lineItemPayload `json:"items"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	for _, it := range payload.Items {
		if it.Quantity <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity must be positive"})
		}
	}

	flow := NewFlow(h.placer)
	created, err := flow.Submit(userID, payloadBasket(payload.Items), payload.Request)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": ve.Error(), "field": ve.Field})
		}
		if errors.Is(err, ErrNotSignedIn) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
		}
		// gateway errors are surfaced raw; the client decides what to retry
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(created)
}

// payloadBasket adapts submitted lines to the Basket contract. Clear is a
// no-op: the device clears its own storage once it sees the confirmation.
type payloadBasket []lineItemPayload

func (b payloadBasket) Items() []cart.Item {
	out := make([]cart.Item, 0, len(b))
	for _, it := range b {
		out = append(out, cart.Item{
			Product: product.Product{
				ID:     it.ProductID,
				Name:   it.Name,
				Price:  it.Price,
				Weight: it.Weight,
			},
			Quantity: it.Quantity,
		})
	}
	return out
}

func (b payloadBasket) Total() int {
	sum := 0
	for _, it := range b {
		sum += it.Price * it.Quantity
	}
	return sum
}

func (b payloadBasket) Clear() error { return nil }
