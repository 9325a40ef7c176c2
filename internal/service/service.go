package service

import (
	"context"

	"github.com/skyglance/weather/internal/domain"
)

// Locator resolves an IP address to a location. An empty ip means "the caller's
// own public address" as seen by the upstream.
type Locator interface {
	Locate(ctx context.Context, ip string) (domain.Location, error)
}

// WeatherProvider fetches current conditions
type WeatherProvider interface {
	GetByCoordinates(ctx context.Context, lat, lon float64) (domain.Weather, error)
	GetByCity(ctx context.Context, city string) (domain.Weather, error)
}

// UpstreamError is a failed upstream lookup. Message is safe to show to end users.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func upstreamErr(message string, err error) *UpstreamError {
	return &UpstreamError{Message: message, Err: err}
}
