package utils

import (
	"math"
	"net"
	"strings"
	"unicode"
	"unicode/utf8"
)

// compassPoints is the 16-point compass rose, clockwise from north
var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// weatherEmojis maps OpenWeatherMap condition groups to an icon
var weatherEmojis = map[string]string{
	"Clear":        "☀️",
	"Clouds":       "☁️",
	"Rain":         "🌧️",
	"Drizzle":      "🌦️",
	"Thunderstorm": "⛈️",
	"Snow":         "❄️",
	"Mist":         "🌫️",
	"Fog":          "🌫️",
	"Haze":         "🌫️",
}

// DefaultWeatherEmoji is used for condition groups without a dedicated icon
const DefaultWeatherEmoji = "🌤️"

// RoundTo rounds a float to specified decimal places, ties to even
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.RoundToEven(value*factor) / factor
}

// CompassDirection converts a wind bearing in degrees to a 16-point compass label
func CompassDirection(degrees float64) string {
	idx := int(math.RoundToEven(degrees/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return compassPoints[idx]
}

// WeatherEmoji returns the icon for a condition group such as "Rain"
func WeatherEmoji(main string) string {
	if e, ok := weatherEmojis[main]; ok {
		return e
	}
	return DefaultWeatherEmoji
}

// Capitalize upper-cases the first letter and lower-cases the rest
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// IsPrivateIP reports whether ip is empty, loopback, link-local or in a private range.
// Such addresses cannot be geolocated.
func IsPrivateIP(ip string) bool {
	ip = strings.TrimSpace(ip)
	if ip == "" || ip == "localhost" {
		return true
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return true
	}
	return parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsLinkLocalUnicast() || parsed.IsUnspecified()
}
