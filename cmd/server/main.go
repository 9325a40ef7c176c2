package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"golang.org/x/time/rate"

	"github.com/skyglance/weather/internal/config"
	httpdelivery "github.com/skyglance/weather/internal/delivery/http"
	"github.com/skyglance/weather/internal/logger"
	"github.com/skyglance/weather/internal/service"
	"github.com/skyglance/weather/internal/telemetry"
)

func main() {
	cfg := config.Load("weather-backend")
	log := logger.New(cfg.Env)

	if err := run(cfg, log); err != nil {
		log.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("tracer shutdown failed", slog.String("error", err.Error()))
		}
	}()

	upstream := &http.Client{
		Timeout:   cfg.UpstreamTimeout,
		Transport: telemetry.Transport(nil),
	}

	// Dependency Injection: Services
	weatherSvc := service.NewWeatherService(cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, upstream)
	locationSvc := service.NewLocationService(cfg.IPAPIBaseURL, upstream)
	lookupSvc := service.NewLookupService(locationSvc, weatherSvc, log)
	if cfg.OpenWeatherAPIKey == "" {
		log.Warn("OPENWEATHER_API_KEY not set, serving mock weather")
	}

	handler := httpdelivery.NewHandler(lookupSvc, log)
	limiter := httpdelivery.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, log)
	limiter.StartJanitor(ctx, time.Minute, cfg.RateLimitIdle)

	fiberCfg := fiber.Config{
		AppName:               "Weather API v1.0",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpdelivery.NewErrorHandler(log),
		DisableStartupMessage: !cfg.IsDevelopment(),
	}
	if len(cfg.TrustedProxies) > 0 {
		// c.IP, and with it the rate limiter key, follows X-Forwarded-For
		// only for requests arriving from these proxies
		fiberCfg.ProxyHeader = fiber.HeaderXForwardedFor
		fiberCfg.EnableTrustedProxyCheck = true
		fiberCfg.TrustedProxies = cfg.TrustedProxies
		fiberCfg.EnableIPValidation = true
	}
	app := fiber.New(fiberCfg)

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpdelivery.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-Request-ID",
	}))

	httpdelivery.SetupRoutes(app, handler, limiter)

	listenErr := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("port", cfg.Port), slog.String("env", cfg.Env))
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Warn("server forced to shutdown", slog.String("error", err.Error()))
	}
	log.Info("server exited gracefully")
	return nil
}
