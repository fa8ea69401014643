package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger verificación de conectividad con la base de datos.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responde 200 si la base de datos contesta, 503 si no.
func HealthHandler(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "database": "down"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "database": "up"})
	}
}
