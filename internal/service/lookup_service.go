package service

import (
	"context"

	"github.com/skyglance/weather/internal/domain"
	"github.com/skyglance/weather/internal/logger"
	"github.com/skyglance/weather/pkg/utils"
)

// LookupService answers the public API: it picks the IP to geolocate and turns
// upstream weather into display readings.
type LookupService struct {
	locator Locator
	weather WeatherProvider
	log     *logger.Logger
}

// NewLookupService creates a new lookup service
func NewLookupService(locator Locator, weather WeatherProvider, log *logger.Logger) *LookupService {
	return &LookupService{
		locator: locator,
		weather: weather,
		log:     log,
	}
}

// Locate geolocates clientIP, or the server's own public IP when clientIP is
// private and cannot be resolved.
func (s *LookupService) Locate(ctx context.Context, clientIP string) (domain.Location, error) {
	log := s.log.WithContext(ctx)
	ip := clientIP
	if utils.IsPrivateIP(clientIP) {
		log.Debug("private client ip, locating server public ip", "client_ip", clientIP)
		ip = ""
	}

	loc, err := s.locator.Locate(ctx, ip)
	if err != nil {
		log.UpstreamError("ip-api", err)
		return domain.Location{}, err
	}
	return loc, nil
}

// WeatherByCoordinates returns the display reading for a coordinate pair
func (s *LookupService) WeatherByCoordinates(ctx context.Context, lat, lon float64) (domain.WeatherReading, error) {
	w, err := s.weather.GetByCoordinates(ctx, lat, lon)
	if err != nil {
		s.log.WithContext(ctx).UpstreamError("openweathermap", err)
		return domain.WeatherReading{}, err
	}
	return NewWeatherReading(w), nil
}

// WeatherByCity returns the display reading for a city name
func (s *LookupService) WeatherByCity(ctx context.Context, city string) (domain.WeatherReading, error) {
	w, err := s.weather.GetByCity(ctx, city)
	if err != nil {
		s.log.WithContext(ctx).UpstreamError("openweathermap", err)
		return domain.WeatherReading{}, err
	}
	return NewWeatherReading(w), nil
}

// NewWeatherReading adds the compass direction and emoji to w
func NewWeatherReading(w domain.Weather) domain.WeatherReading {
	return domain.WeatherReading{
		City:          w.City,
		Country:       w.Country,
		Emoji:         utils.WeatherEmoji(w.Main),
		Temperature:   domain.Float(w.Temperature),
		Description:   w.Description,
		FeelsLike:     domain.Float(w.FeelsLike),
		Humidity:      domain.Int(w.Humidity),
		WindSpeed:     domain.Float(w.WindSpeed),
		WindDirection: utils.CompassDirection(w.WindDeg),
		Visibility:    domain.Float(w.Visibility),
		Pressure:      domain.Int(w.Pressure),
		WindDeg:       domain.Float(w.WindDeg),
		Main:          w.Main,
		Icon:          w.Icon,
		Clouds:        domain.Int(w.Clouds),
		IsMock:        w.IsMock,
	}
}
