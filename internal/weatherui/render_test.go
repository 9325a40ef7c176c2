package weatherui

import (
	"encoding/json"
	"testing"

	"github.com/skyglance/weather/internal/domain"
)

func TestRenderKeepsServerNumberText(t *testing.T) {
	var r domain.WeatherReading
	raw := `{"city":"Reykjavík","country":"IS","emoji":"❄️","temperature":-3.5,"description":"Snow","feels_like":-9,"humidity":87,"wind_speed":11.25,"wind_direction":"NNE","visibility":0.8,"pressure":"998"}`
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	d := Render(r)

	checks := map[string][2]string{
		"temperature": {d.Temperature, "-3.5°C"},
		"feels_like":  {d.FeelsLike, "-9°C"},
		"humidity":    {d.Humidity, "87%"},
		"wind_speed":  {d.WindSpeed, "11.25 m/s"},
		"visibility":  {d.Visibility, "0.8 km"},
		"pressure":    {d.Pressure, "998 hPa"},
		"city":        {d.City, "Reykjavík"},
		"icon":        {d.Icon, "❄️"},
		"direction":   {d.WindDirection, "NNE"},
	}
	for field, c := range checks {
		if c[0] != c[1] {
			t.Fatalf("%s: expected %q, got %q", field, c[1], c[0])
		}
	}
}

func TestRenderWholeNumbersDropTrailingZero(t *testing.T) {
	var r domain.WeatherReading
	raw := `{"city":"Paris","temperature":22.0,"feels_like":21.0,"humidity":40,"wind_speed":3.0,"visibility":10.0,"pressure":1013}`
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	d := Render(r)
	if d.Temperature != "22°C" || d.FeelsLike != "21°C" || d.WindSpeed != "3 m/s" || d.Visibility != "10 km" {
		t.Fatalf("expected trailing zeros dropped, got %q %q %q %q", d.Temperature, d.FeelsLike, d.WindSpeed, d.Visibility)
	}
}

func TestRenderStringFields(t *testing.T) {
	var r domain.WeatherReading
	raw := `{"city":"Oslo","temperature":"-2","visibility":"N/A","humidity":"high","pressure":null}`
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("string fields must decode: %v", err)
	}

	d := Render(r)
	if d.Temperature != "-2°C" || d.Visibility != "N/A km" || d.Humidity != "high%" {
		t.Fatalf("expected strings passed through, got %q %q %q", d.Temperature, d.Visibility, d.Humidity)
	}
	if d.Pressure != " hPa" {
		t.Fatalf("expected empty pressure text, got %q", d.Pressure)
	}
}
