package product

import (
	"os"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.getProducts)
	app.Get("/api/v1/product/:id", h.getProduct)
	app.Get("/api/v1/search", h.searchProducts)

	// dev-only endpoint to reseed the catalog — enabled when ALLOW_SEED_PRODUCTS=1
	app.Post("/dev/seed-products", h.seedProducts)
}

// RegisterAdminRoutes mounts the catalog mutations on a router that already
// carries the admin gate.
func (h *Handler) RegisterAdminRoutes(router fiber.Router) {
	router.Post("/products", h.createProduct)
	router.Put("/product/:id", h.updateProduct)
	router.Delete("/product/:id", h.deleteProduct)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	products, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(products)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Product not found")
	}
	return c.JSON(p)
}

func (h *Handler) searchProducts(c *fiber.Ctx) error {
	results, err := h.service.Search(c.Query("q"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(results)
}

func validateProductPayload(p *Product) map[string]string {
	errs := map[string]string{}
	if p.Name == "" {
		errs["name"] = "name is required"
	}
	if p.Description == "" {
		errs["description"] = "description is required"
	}
	if p.Price < 0 {
		errs["price"] = "price must be >= 0"
	}
	if p.Weight == "" {
		errs["weight"] = "weight is required"
	}
	if p.Image == "" {
		errs["image"] = "image is required"
	}
	return errs
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// validate payload and return all validation errors together
	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	created, err := h.service.Create(*p)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	updated, err := h.service.Update(c.Params("id"), *p)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).SendString("Product not found")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).SendString("Product not found")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendString("Product deleted")
}

// seedProducts clears the products table and inserts the provided list (or a
// default sample list). Gated by the ALLOW_SEED_PRODUCTS environment variable.
func (h *Handler) seedProducts(c *fiber.Ctx) error {
	if os.Getenv("ALLOW_SEED_PRODUCTS") != "1" {
		return c.Status(fiber.StatusForbidden).SendString("seeding not allowed")
	}

	var products []Product
	// If body parsing fails, fall back to the default sample catalog.
	// An explicit empty array clears the table without re-seeding.
	if err := c.BodyParser(&products); err != nil {
		products = SampleCatalog()
	}

	if err := h.service.ResetProducts(products); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}
	return c.JSON(products)
}

// SampleCatalog returns the starter jars used when the shop opens with an
// empty products table.
func SampleCatalog() []Product {
	return []Product{
		{
			Name:        "Mixed Vegetable Pickle",
			Description: "Classic home-made torshi with cauliflower, carrot and celery",
			Price:       185000,
			Weight:      "700 g",
			Image:       "/images/mixed-pickle.jpg",
		},
		{
			Name:        "Aged Garlic Pickle",
			Description: "Whole garlic bulbs aged seven years in grape vinegar",
			Price:       420000,
			Weight:      "500 g",
			Image:       "/images/garlic-pickle.jpg",
		},
		{
			Name:        "Cucumber Pickle",
			Description: "Crunchy brined cucumbers with dill and tarragon",
			Price:       150000,
			Weight:      "650 g",
			Image:       "/images/cucumber-pickle.jpg",
		},
		{
			Name:        "Eggplant Pickle",
			Description: "Stuffed baby eggplants in spiced vinegar",
			Price:       210000,
			Weight:      "600 g",
			Image:       "/images/eggplant-pickle.jpg",
		},
	}
}
