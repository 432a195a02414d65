package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/torshikhaneh/pickle-shop-backend/internal/category"
	"github.com/torshikhaneh/pickle-shop-backend/internal/checkout"
	"github.com/torshikhaneh/pickle-shop-backend/internal/config"
	"github.com/torshikhaneh/pickle-shop-backend/internal/order"
	"github.com/torshikhaneh/pickle-shop-backend/internal/product"
	"github.com/torshikhaneh/pickle-shop-backend/internal/review"
	"github.com/torshikhaneh/pickle-shop-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)

	db := mustOpenDB(cfg)
	defer db.Close()

	bootstrapSchema(db)

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService)

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	orderService := order.NewService(order.NewPostgresRepository(db))
	orderHandler := order.NewHandler(orderService)
	checkoutHandler := checkout.NewHandler(orderService)

	reviewService := review.NewService(review.NewPostgresRepository(db))
	reviewHandler := review.NewHandler(reviewService)

	categoryHandler := category.NewHandler()

	seedCatalog(db, productService)
	provisionAdmin(cfg, userService)

	// public routes go in before the JWT middleware; everything registered
	// after it requires a token
	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	reviewHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)

	app.Use(requestLog)
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	checkoutHandler.RegisterProtectedRoutes(app)
	reviewHandler.RegisterProtectedRoutes(app)

	admin := app.Group("/api/v1/admin", user.RequireAdmin(userService))
	productHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)

	if err := app.Listen(cfg.Addr); err != nil {
		panic(err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

// bootstrapSchema creates the tables on first run. Statements are idempotent
// so restarts are safe.
func bootstrapSchema(db *sql.DB) {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price INT NOT NULL DEFAULT 0,
			image TEXT NOT NULL DEFAULT '',
			weight TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			full_name TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id TEXT NOT NULL,
			role TEXT NOT NULL,
			UNIQUE (user_id, role)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			customer_name TEXT NOT NULL,
			customer_phone TEXT NOT NULL,
			customer_address TEXT NOT NULL,
			total_price INT NOT NULL DEFAULT 0,
			notes TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			product_name TEXT NOT NULL,
			product_price INT NOT NULL DEFAULT 0,
			product_weight TEXT NOT NULL DEFAULT '',
			quantity INT NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id TEXT PRIMARY KEY,
			product_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			rating INT NOT NULL,
			comment TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}

// seedCatalog inserts the sample jars when the shop opens with an empty
// products table.
func seedCatalog(db *sql.DB, products *product.Service) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		fmt.Printf("warning: could not count products: %v\n", err)
		return
	}
	if count > 0 {
		return
	}
	for _, p := range product.SampleCatalog() {
		if _, err := products.Create(p); err != nil {
			fmt.Printf("warning: could not seed product %q: %v\n", p.Name, err)
		}
	}
}

// provisionAdmin grants the admin role to the configured account, if that
// account exists. Registration still happens through the normal sign-up flow.
func provisionAdmin(cfg config.Config, users *user.Service) {
	if cfg.AdminEmail == "" {
		return
	}
	u, err := users.GetByEmail(cfg.AdminEmail)
	if err != nil {
		fmt.Printf("warning: admin account %s not registered yet\n", cfg.AdminEmail)
		return
	}
	if err := users.GrantAdmin(u.ID); err != nil {
		fmt.Printf("warning: could not grant admin role: %v\n", err)
	}
}

func requestLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	fmt.Printf("%s %s -> %d (%v)\n", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}
