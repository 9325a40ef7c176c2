package http

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/skyglance/weather/internal/domain"
	"github.com/skyglance/weather/internal/logger"
	"github.com/skyglance/weather/internal/service"
)

const (
	msgMissingParams      = "Missing location parameters"
	msgInvalidCoordinates = "Invalid coordinates"
	msgLocationFailed     = "Could not detect location"
	msgWeatherFailed      = "Failed to fetch weather data"
)

// Lookup is what the handlers need from the service layer
type Lookup interface {
	Locate(ctx context.Context, clientIP string) (domain.Location, error)
	WeatherByCoordinates(ctx context.Context, lat, lon float64) (domain.WeatherReading, error)
	WeatherByCity(ctx context.Context, city string) (domain.WeatherReading, error)
}

// coordinatesQuery is the raw lat/lon pair from the query string
type coordinatesQuery struct {
	Lat string `validate:"required,latitude"`
	Lon string `validate:"required,longitude"`
}

// Handler contains all HTTP handlers
type Handler struct {
	lookup   Lookup
	validate *validator.Validate
	log      *logger.Logger
}

// NewHandler creates a new handler
func NewHandler(lookup Lookup, log *logger.Logger) *Handler {
	return &Handler{
		lookup:   lookup,
		validate: validator.New(),
		log:      log,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "weather-backend",
		"version": "1.0.0",
	})
}

// GetLocation geolocates the caller by IP
func (h *Handler) GetLocation(c *fiber.Ctx) error {
	ctx := requestContext(c)
	clientIP := ClientIP(c)
	h.log.WithContext(ctx).Debug("client ip detected", "client_ip", clientIP)

	loc, err := h.lookup.Locate(ctx, clientIP)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(domain.LocationResult{
			Success: false,
			Error:   userMessage(err, msgLocationFailed),
		})
	}
	return c.JSON(domain.NewLocationResult(loc))
}

// GetWeather returns current weather by lat/lon or by city
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	ctx := requestContext(c)
	lat, lon := c.Query("lat"), c.Query("lon")
	// fiber query values alias the request buffer
	city := strings.Clone(strings.TrimSpace(c.Query("city")))

	var (
		reading domain.WeatherReading
		err     error
	)
	switch {
	case lat != "" && lon != "":
		q := coordinatesQuery{Lat: lat, Lon: lon}
		if verr := h.validate.Struct(q); verr != nil {
			return weatherFailure(c, msgInvalidCoordinates)
		}
		latF, _ := strconv.ParseFloat(lat, 64)
		lonF, _ := strconv.ParseFloat(lon, 64)
		reading, err = h.lookup.WeatherByCoordinates(ctx, latF, lonF)
	case city != "":
		reading, err = h.lookup.WeatherByCity(ctx, city)
	default:
		return weatherFailure(c, msgMissingParams)
	}

	if err != nil {
		return weatherFailure(c, userMessage(err, msgWeatherFailed))
	}
	return c.JSON(domain.WeatherResult{Success: true, Data: &reading})
}

func weatherFailure(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(domain.WeatherResult{
		Success: false,
		Error:   message,
	})
}

// userMessage extracts the client-safe text from an upstream error
func userMessage(err error, fallback string) string {
	var upErr *service.UpstreamError
	if errors.As(err, &upErr) && upErr.Message != "" {
		return upErr.Message
	}
	return fallback
}

// requestContext carries the fiber request ID into a context.Context
func requestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if id, ok := c.Locals("requestid").(string); ok && id != "" {
		ctx = context.WithValue(ctx, logger.RequestIDKey, id)
	}
	return ctx
}

// NewErrorHandler renders errors escaping handlers in the API envelope and
// logs server-side failures
func NewErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}
		if code >= fiber.StatusInternalServerError && log != nil {
			log.WithContext(requestContext(c)).HTTPError(c.Method(), c.Path(), code, err, ClientIP(c))
		}

		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   message,
		})
	}
}
