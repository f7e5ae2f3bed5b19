package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"orient-classics-backend/database"
	"orient-classics-backend/middlewares"
	"orient-classics-backend/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// envInt reads an int env var with a default fallback.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func main() {
	// ---- Database
	database.Connect()
	if err := database.Migrate(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	// ---- Limits (configurable via env)
	// Fiber default BodyLimit is 4 * 1024 * 1024 bytes if unset (per docs).
	// Word template uploads need more headroom, so default to 16 MB.
	bodyLimitBytes := envInt("BODY_LIMIT_BYTES", 0)
	if bodyLimitBytes <= 0 {
		bodyLimitBytes = envInt("BODY_LIMIT_MB", 16) * 1024 * 1024
	}

	// ---- Fiber app with global error handler + body limit
	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    bodyLimitBytes,
	})

	// ---- CORS
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: false,
		AllowHeaders:     "Origin, Content-Type, Accept, Idempotency-Key",
	}))

	// ---- Global rate limiter (applies to all routes; tune via env)
	rlMax := envInt("RATE_LIMIT_MAX", 60)                                            // default 60 reqs
	rlWindow := time.Duration(envInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second // default 60s window
	app.Use(limiter.New(limiter.Config{
		Max:        rlMax,
		Expiration: rlWindow,
		// Default KeyGenerator = client IP; default 429 handler is fine.
	}))

	// ---- Routes
	routes.Register(app)

	// ---- Start
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(":" + port); err != nil {
		panic(err)
	}
}
