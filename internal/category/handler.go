package category

import "github.com/gofiber/fiber/v2"

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/categories", h.getCategories)
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	return c.JSON(Catalog)
}
