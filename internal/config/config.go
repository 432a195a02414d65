package config

import "os"

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	// AdminEmail, when set, is granted the admin role at startup.
	AdminEmail string
}

func Load() Config {
	addr := os.Getenv("PICKLE_SHOP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Config{
		Addr:        addr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		AdminEmail:  os.Getenv("ADMIN_EMAIL"),
	}
}
