package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/skyglance/weather/internal/domain"
	"github.com/skyglance/weather/pkg/utils"
)

const (
	msgWeatherFailed   = "Failed to fetch weather data"
	msgCityNotFound    = "City not found"
	msgInvalidResponse = "Invalid response from weather API"
)

// WeatherService handles weather data fetching from OpenWeatherMap
type WeatherService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewWeatherService creates a new weather service. With an empty apiKey the
// service runs in demo mode and serves mock readings.
func NewWeatherService(apiKey, baseURL string, httpClient *http.Client) *WeatherService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &WeatherService{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// OpenWeatherResponse represents the OpenWeatherMap current weather response
type OpenWeatherResponse struct {
	Main *struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Visibility float64 `json:"visibility"`
	Name       string  `json:"name"`
	Sys        struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// GetByCoordinates fetches current weather for a coordinate pair
func (s *WeatherService) GetByCoordinates(ctx context.Context, lat, lon float64) (domain.Weather, error) {
	if s.apiKey == "" {
		return s.getMockWeather(""), nil
	}
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return s.fetch(ctx, params, msgWeatherFailed)
}

// GetByCity fetches current weather for a city name
func (s *WeatherService) GetByCity(ctx context.Context, city string) (domain.Weather, error) {
	if s.apiKey == "" {
		return s.getMockWeather(city), nil
	}
	params := url.Values{}
	params.Set("q", city)
	return s.fetch(ctx, params, msgCityNotFound)
}

func (s *WeatherService) fetch(ctx context.Context, params url.Values, notFoundMsg string) (domain.Weather, error) {
	ctx, span := otel.Tracer("weather-service").Start(ctx, "openweathermap: current-weather")
	defer span.End()

	params.Set("appid", s.apiKey)
	params.Set("units", "metric")
	endpoint := s.baseURL + "/weather?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create request")
		return domain.Weather{}, fmt.Errorf("weather: failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return domain.Weather{}, upstreamErr("Network error: "+redactKey(err, s.apiKey), err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		span.SetStatus(codes.Error, "not found")
		return domain.Weather{}, upstreamErr(notFoundMsg, nil)
	case resp.StatusCode != http.StatusOK:
		err := fmt.Errorf("openweathermap returned status %d", resp.StatusCode)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return domain.Weather{}, upstreamErr(msgWeatherFailed, err)
	}

	var owResp OpenWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&owResp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode response")
		return domain.Weather{}, upstreamErr(msgInvalidResponse, err)
	}
	if owResp.Main == nil || len(owResp.Weather) == 0 {
		err := errors.New("missing main or weather section")
		span.RecordError(err)
		span.SetStatus(codes.Error, "incomplete response")
		return domain.Weather{}, upstreamErr(msgInvalidResponse, err)
	}

	span.SetStatus(codes.Ok, "")
	return domain.Weather{
		Temperature: utils.RoundTo(owResp.Main.Temp, 1),
		FeelsLike:   utils.RoundTo(owResp.Main.FeelsLike, 1),
		Humidity:    owResp.Main.Humidity,
		Pressure:    owResp.Main.Pressure,
		WindSpeed:   utils.RoundTo(owResp.Wind.Speed, 1),
		WindDeg:     owResp.Wind.Deg,
		Description: utils.Capitalize(owResp.Weather[0].Description),
		Main:        owResp.Weather[0].Main,
		Icon:        owResp.Weather[0].Icon,
		City:        owResp.Name,
		Country:     owResp.Sys.Country,
		Visibility:  owResp.Visibility / 1000,
		Clouds:      owResp.Clouds.All,
		Timestamp:   time.Now(),
	}, nil
}

// redactKey keeps the API key out of error text that reaches clients
func redactKey(err error, key string) string {
	msg := err.Error()
	if key == "" {
		return msg
	}
	return strings.ReplaceAll(msg, key, "REDACTED")
}

// getMockWeather returns a simulated seasonal reading
func (s *WeatherService) getMockWeather(city string) domain.Weather {
	month := time.Now().Month()
	var temp, feelsLike float64
	var description, main string

	switch {
	case month >= 12 || month <= 2: // Winter
		temp, feelsLike = -8.0, -15.0
		description, main = "Light snow", "Snow"
	case month >= 3 && month <= 5: // Spring
		temp, feelsLike = 12.0, 10.0
		description, main = "Scattered clouds", "Clouds"
	case month >= 6 && month <= 8: // Summer
		temp, feelsLike = 28.0, 30.0
		description, main = "Clear sky", "Clear"
	default: // Autumn
		temp, feelsLike = 8.0, 5.0
		description, main = "Light rain", "Rain"
	}

	country := "KZ"
	if city == "" {
		city = "Almaty"
	} else {
		country = ""
	}

	return domain.Weather{
		Temperature: temp,
		FeelsLike:   feelsLike,
		Humidity:    65,
		Pressure:    1015,
		WindSpeed:   3.5,
		WindDeg:     200,
		Description: description,
		Main:        main,
		Icon:        "04d",
		City:        city,
		Country:     country,
		Visibility:  8,
		Clouds:      40,
		Timestamp:   time.Now(),
		IsMock:      true,
	}
}
