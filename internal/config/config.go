// Package config loads application configuration from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings shared by the server and the terminal client
type Config struct {
	Port string
	Env  string

	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	IPAPIBaseURL       string
	UpstreamTimeout    time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
	RateLimitIdle  time.Duration

	// TrustedProxies may set the client address through X-Forwarded-For.
	// When empty the connection address is used as is.
	TrustedProxies []string

	// WeatherAPIURL is the backend the terminal client talks to
	WeatherAPIURL string
	ClientTimeout time.Duration

	OTLPEndpoint string
	ServiceName  string
}

// Load reads .env (if any) and the process environment
func Load(serviceName string) *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("GO_ENV", "development"),
		OpenWeatherAPIKey:  getEnv("OPENWEATHER_API_KEY", ""),
		OpenWeatherBaseURL: getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		IPAPIBaseURL:       getEnv("IPAPI_BASE_URL", "http://ip-api.com/json"),
		UpstreamTimeout:    getEnvDuration("UPSTREAM_TIMEOUT", 5*time.Second),
		RateLimitRPS:       getEnvFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 10),
		RateLimitIdle:      getEnvDuration("RATE_LIMIT_IDLE", 10*time.Minute),
		TrustedProxies:     getEnvList("TRUSTED_PROXIES"),
		WeatherAPIURL:      getEnv("WEATHER_API_URL", "http://localhost:8080"),
		ClientTimeout:      getEnvDuration("WEATHER_CLIENT_TIMEOUT", 15*time.Second),
		OTLPEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:        getEnv("OTEL_SERVICE_NAME", serviceName),
	}
}

// IsDevelopment reports whether the app runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList splits a comma separated value, dropping blanks
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("[WARN] invalid integer for %s: %q, using %d", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("[WARN] invalid number for %s: %q, using %v", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration accepts Go duration strings ("15s") or plain seconds ("15")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("[WARN] invalid duration for %s: %q, using %s", key, value, defaultValue)
	return defaultValue
}
