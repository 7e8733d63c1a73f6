package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	httpapi "github.com/i474232898/weather-party-planner/internal/api/http"
	"github.com/i474232898/weather-party-planner/internal/config"
	"github.com/i474232898/weather-party-planner/internal/logger"
	"github.com/i474232898/weather-party-planner/internal/observability"
	"github.com/i474232898/weather-party-planner/internal/scheduler"
	"github.com/i474232898/weather-party-planner/internal/weather"
	"github.com/i474232898/weather-party-planner/internal/weather/providers"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr := logger.Init(cfg.LogLevel, cfg.Environment)
	defer logger.Close()

	metrics := observability.NewMetrics()

	// Shared HTTP client for outbound calls; no retries unless configured.
	httpCfg := providers.NewHTTPClientConfig(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.UpstreamMaxRetries)

	var geocoder weather.Geocoder
	switch cfg.GeocoderProvider {
	case config.GeocoderGoogle:
		geocoder = providers.NewGoogleGeocoder(cfg.GoogleMapsAPIKey, cfg.HTTPTimeout)
	default:
		geocoder = providers.NewOpenMeteoGeocoder(httpCfg, cfg.OpenMeteoGeocodingURL)
	}

	var provider weather.Provider
	switch cfg.WeatherProvider {
	case config.WeatherOpenMeteo:
		provider = providers.NewOpenMeteoProvider(httpCfg, cfg.OpenMeteoBaseURL)
	default:
		provider = providers.NewBrightSkyProvider(httpCfg, cfg.BrightSkyBaseURL)
	}

	logr.Infow("providers configured",
		"geocoder", geocoder.Name(),
		"weather", provider.Name(),
		"httpTimeout", cfg.HTTPTimeout,
		"maxRetries", cfg.UpstreamMaxRetries)

	service := weather.NewService(geocoder, provider, metrics, logr)

	sched := scheduler.New(cfg.PlanLocations, cfg.PlanInterval, cfg.PlanHorizonDays, service, clockwork.NewRealClock(), logr)
	if err := sched.Start(); err != nil {
		logr.Fatalw("failed to start scheduler", "error", err)
	}
	defer sched.Stop()

	app := httpapi.NewApp(service, metrics, logr)

	go func() {
		logr.Infow("http server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logr.Errorw("fiber server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logr.Errorw("error during shutdown", "error", err)
	}
}
