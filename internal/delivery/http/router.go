package http

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all HTTP routes. limiter may be nil.
func SetupRoutes(app *fiber.App, handler *Handler, limiter *IPRateLimiter) {
	// Health check
	app.Get("/health", handler.HealthCheck)

	api := app.Group("/api")
	if limiter != nil {
		api.Use(limiter.RateLimit())
	}
	{
		api.Get("/location", handler.GetLocation)
		api.Get("/weather", handler.GetWeather)
	}
}
