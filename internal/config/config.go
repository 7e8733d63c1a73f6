package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-party-planner/internal/common"
)

const (
	GeocoderGoogle    = "google"
	GeocoderOpenMeteo = "openmeteo"

	WeatherBrightSky = "brightsky"
	WeatherOpenMeteo = "openmeteo"
)

type AppConfig struct {
	Port        string
	LogLevel    string
	Environment string

	// HTTPTimeout bounds every outbound geocoding and weather call. A Google
	// lookup that outlives it is abandoned rather than aborted.
	HTTPTimeout     time.Duration
	ShutdownTimeout time.Duration
	// UpstreamMaxRetries is the number of retries after a transient upstream failure.
	UpstreamMaxRetries int

	GoogleMapsAPIKey string
	GeocoderProvider string // google | openmeteo
	WeatherProvider  string // brightsky | openmeteo

	BrightSkyBaseURL      string
	OpenMeteoBaseURL      string
	OpenMeteoGeocodingURL string

	// Scheduled plans. An empty PlanLocations disables the job.
	PlanLocations   []string
	PlanInterval    time.Duration
	PlanHorizonDays int
}

// LoadDotEnv loads a .env file into the environment if one exists.
func LoadDotEnv() error {
	return godotenv.Load()
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:                  getenvDefault("PORT", "8080"),
		LogLevel:              getenvDefault("LOG_LEVEL", "info"),
		Environment:           getenvDefault("ENVIRONMENT", "development"),
		GoogleMapsAPIKey:      os.Getenv("GOOGLE_MAPS_API_KEY"),
		WeatherProvider:       getenvDefault("WEATHER_PROVIDER", WeatherBrightSky),
		BrightSkyBaseURL:      getenvDefault("BRIGHTSKY_BASE_URL", "https://api.brightsky.dev"),
		OpenMeteoBaseURL:      getenvDefault("OPENMETEO_BASE_URL", "https://api.open-meteo.com"),
		OpenMeteoGeocodingURL: getenvDefault("OPENMETEO_GEOCODING_URL", "https://geocoding-api.open-meteo.com"),
		PlanLocations:         common.NonEmpty(common.SplitTrim(os.Getenv("PLAN_LOCATIONS"), ",")),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getenvDuration("SHUTDOWN_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.PlanInterval, err = getenvDuration("PLAN_INTERVAL", "1h"); err != nil {
		return nil, err
	}
	if cfg.UpstreamMaxRetries, err = getenvInt("UPSTREAM_MAX_RETRIES", 0); err != nil {
		return nil, err
	}
	if cfg.UpstreamMaxRetries < 0 {
		return nil, fmt.Errorf("invalid UPSTREAM_MAX_RETRIES: must not be negative")
	}
	if cfg.PlanHorizonDays, err = getenvInt("PLAN_HORIZON_DAYS", 7); err != nil {
		return nil, err
	}
	if cfg.PlanHorizonDays < 0 {
		return nil, fmt.Errorf("invalid PLAN_HORIZON_DAYS: must not be negative")
	}

	// Google is the default geocoder whenever a key is available.
	defaultGeocoder := GeocoderOpenMeteo
	if cfg.GoogleMapsAPIKey != "" {
		defaultGeocoder = GeocoderGoogle
	}
	cfg.GeocoderProvider = getenvDefault("GEOCODER_PROVIDER", defaultGeocoder)

	switch cfg.GeocoderProvider {
	case GeocoderGoogle:
		if cfg.GoogleMapsAPIKey == "" {
			return nil, fmt.Errorf("GEOCODER_PROVIDER is google but GOOGLE_MAPS_API_KEY is not set")
		}
	case GeocoderOpenMeteo:
	default:
		return nil, fmt.Errorf("invalid GEOCODER_PROVIDER %q", cfg.GeocoderProvider)
	}

	switch cfg.WeatherProvider {
	case WeatherBrightSky, WeatherOpenMeteo:
	default:
		return nil, fmt.Errorf("invalid WEATHER_PROVIDER %q", cfg.WeatherProvider)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
