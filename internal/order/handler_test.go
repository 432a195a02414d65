package order

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/torshikhaneh/pickle-shop-backend/internal/user"
)

// sessionAs stands in for the JWT middleware and plants a parsed token for
// the given user.
func sessionAs(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": userID}})
		}
		return c.Next()
	}
}

func newTestApp(t *testing.T, sessionUserID string) (*fiber.App, *Service) {
	t.Helper()

	svc := NewService(NewInMemoryRepository())
	handler := NewHandler(svc)

	users := user.NewService(user.NewInMemoryRepository(nil))
	admin, err := users.Register(user.User{Email: "admin@pickles.ir", Password: "secret", FullName: "Shop Admin"})
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}
	if err := users.GrantAdmin(admin.ID); err != nil {
		t.Fatalf("grant admin: %v", err)
	}
	if sessionUserID == "admin" {
		sessionUserID = admin.ID
	}

	app := fiber.New()
	app.Use(sessionAs(sessionUserID))
	handler.RegisterProtectedRoutes(app)
	adminGroup := app.Group("/api/v1/admin", user.RequireAdmin(users))
	handler.RegisterAdminRoutes(adminGroup)
	return app, svc
}

func TestGetMyOrders_ReturnsOnlyOwnOrders(t *testing.T) {
	app, svc := newTestApp(t, "u1")

	if _, err := svc.PlaceOrder(Order{UserID: "u1", CustomerName: "A", CustomerPhone: "0912", CustomerAddress: "Tehran"}, sampleItems()); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	if _, err := svc.PlaceOrder(Order{UserID: "u2", CustomerName: "B", CustomerPhone: "0935", CustomerAddress: "Shiraz"}, sampleItems()); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/v1/orders", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var orders []Order
	if err := json.Unmarshal(body, &orders); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(orders) != 1 || orders[0].UserID != "u1" {
		t.Fatalf("expected just u1's order, got %+v", orders)
	}
}

func TestGetMyOrders_Unauthorized(t *testing.T) {
	app, _ := newTestApp(t, "")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/orders", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAdminOrders_GateAndStatusUpdate(t *testing.T) {
	app, svc := newTestApp(t, "admin")
	created, err := svc.PlaceOrder(Order{UserID: "u1", CustomerName: "A", CustomerPhone: "0912", CustomerAddress: "Tehran"}, sampleItems())
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/admin/orders", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", resp.StatusCode)
	}

	req := httptest.NewRequest("PATCH", "/api/v1/admin/order/"+created.ID+"/status", strings.NewReader(`{"status":"shipped"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	all, _ := svc.ListAll()
	if all[0].Status != StatusShipped {
		t.Fatalf("status not applied: %q", all[0].Status)
	}

	req = httptest.NewRequest("PATCH", "/api/v1/admin/order/"+created.ID+"/status", strings.NewReader(`{"status":"returned"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", resp.StatusCode)
	}
}

func TestAdminOrders_ForbiddenForRegularUser(t *testing.T) {
	app, _ := newTestApp(t, "u1")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/admin/orders", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}
