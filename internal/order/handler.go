package order

import (
	"github.com/gofiber/fiber/v2"

	"github.com/torshikhaneh/pickle-shop-backend/internal/user"
)

// Handler serves order reads and the back-office status changes. Order
// creation goes through the checkout flow, which has its own handler.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/orders", h.getMyOrders)
}

// RegisterAdminRoutes mounts the back-office surface on a router that
// already carries the admin gate.
func (h *Handler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/orders", h.getAllOrders)
	router.Patch("/order/:id/status", h.updateStatus)
}

// getMyOrders returns the authenticated user's orders, newest first, each
// with its line items attached.
func (h *Handler) getMyOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) getAllOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	payload := new(statusUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.UpdateStatus(c.Params("id"), payload.Status); err != nil {
		switch err {
		case ErrInvalidStatus:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "status updated", "status": payload.Status})
}
