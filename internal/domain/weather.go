package domain

import "time"

// Weather represents the upstream weather data for a location, before the
// display enrichment (emoji, compass direction) is applied.
type Weather struct {
	Temperature float64   `json:"temperature"`
	FeelsLike   float64   `json:"feels_like"`
	Humidity    int       `json:"humidity"`
	Pressure    int       `json:"pressure"`
	WindSpeed   float64   `json:"wind_speed"`
	WindDeg     float64   `json:"wind_deg"`
	Description string    `json:"description"`
	Main        string    `json:"main"`
	Icon        string    `json:"icon"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Visibility  float64   `json:"visibility"` // km
	Clouds      int       `json:"clouds"`
	Timestamp   time.Time `json:"-"`
	IsMock      bool      `json:"is_mock"`
}

// WeatherReading is the display payload of a successful weather lookup.
// Numeric fields hold display text; see Scalar.
type WeatherReading struct {
	City          string      `json:"city"`
	Country       string      `json:"country"`
	Emoji         string      `json:"emoji"`
	Temperature   Scalar `json:"temperature"`
	Description   string      `json:"description"`
	FeelsLike     Scalar `json:"feels_like"`
	Humidity      Scalar `json:"humidity"`
	WindSpeed     Scalar `json:"wind_speed"`
	WindDirection string      `json:"wind_direction"`
	Visibility    Scalar `json:"visibility"`
	Pressure      Scalar `json:"pressure"`

	WindDeg Scalar `json:"wind_deg,omitempty"`
	Main    string      `json:"main,omitempty"`
	Icon    string      `json:"icon,omitempty"`
	Clouds  Scalar `json:"clouds,omitempty"`
	IsMock  bool        `json:"is_mock,omitempty"`
}

// WeatherResult wraps a weather reading with the success/error envelope
type WeatherResult struct {
	Success bool            `json:"success"`
	Data    *WeatherReading `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}
