package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skyglance/weather/internal/apiclient"
	"github.com/skyglance/weather/internal/config"
	"github.com/skyglance/weather/internal/delivery/cli"
	"github.com/skyglance/weather/internal/logger"
	"github.com/skyglance/weather/internal/telemetry"
	"github.com/skyglance/weather/internal/weatherui"
)

func main() {
	cfg := config.Load("weather-cli")
	// stdout belongs to the view
	log := logger.NewWithWriter(cfg.Env, os.Stderr)

	if err := run(cfg, log); err != nil {
		log.Error("weather client failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
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

	client := apiclient.New(cfg.WeatherAPIURL, cfg.ClientTimeout, log)

	healthCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	if err := client.Health(healthCtx); err != nil {
		log.Warn("backend not reachable", slog.String("url", cfg.WeatherAPIURL), slog.String("error", err.Error()))
	}
	cancel()

	view := cli.NewTerminalView(os.Stdout)
	ctrl := weatherui.NewController(client, view, log)

	fmt.Fprintln(os.Stdout, "Type a city and press Enter. /detect to use your location, /quit to exit.")
	return cli.Run(ctx, os.Stdin, ctrl, log)
}
