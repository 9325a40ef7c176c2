package weatherui

import "github.com/skyglance/weather/internal/domain"

// Display holds the text of every field the UI shows for a reading
type Display struct {
	City          string
	Country       string
	Icon          string
	Temperature   string
	Description   string
	FeelsLike     string
	Humidity      string
	WindSpeed     string
	WindDirection string
	Visibility    string
	Pressure      string
}

// Render formats a reading. Numbers keep the exact text the server sent.
func Render(r domain.WeatherReading) Display {
	return Display{
		City:          r.City,
		Country:       r.Country,
		Icon:          r.Emoji,
		Temperature:   r.Temperature.String() + "°C",
		Description:   r.Description,
		FeelsLike:     r.FeelsLike.String() + "°C",
		Humidity:      r.Humidity.String() + "%",
		WindSpeed:     r.WindSpeed.String() + " m/s",
		WindDirection: r.WindDirection,
		Visibility:    r.Visibility.String() + " km",
		Pressure:      r.Pressure.String() + " hPa",
	}
}
