package handlers

import (
	"github.com/gofiber/fiber/v3"

	"github.com/jirani/uchunguzi/internal/database"
	"github.com/jirani/uchunguzi/internal/realtime"
)

// HandleHealth reports service and database status plus the number of
// dashboards listening for live refreshes.
// GET /health
func HandleHealth(hub *realtime.Hub) fiber.Handler {
	return func(c fiber.Ctx) error {
		clients := 0
		if hub != nil {
			clients = hub.GetClientCount()
		}
		if database.DB == nil {
			return c.JSON(fiber.Map{"status": "no_db_configured", "live_clients": clients})
		}
		if err := database.DB.Ping(); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Error in health check: " + err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok", "live_clients": clients})
	}
}

// HandleUp is the Docker health check endpoint.
// GET /up
func HandleUp(c fiber.Ctx) error {
	if database.DB == nil {
		return c.Status(503).SendString("database unavailable")
	}
	if err := database.DB.Ping(); err != nil {
		return c.Status(503).SendString("database unavailable")
	}
	return c.SendStatus(200)
}

// HandleVersion reports the build version.
// GET /api/version
func HandleVersion(version string) fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"version": version})
	}
}
