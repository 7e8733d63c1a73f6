package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 0, cfg.UpstreamMaxRetries)
	assert.Equal(t, GeocoderOpenMeteo, cfg.GeocoderProvider)
	assert.Equal(t, WeatherBrightSky, cfg.WeatherProvider)
	assert.Equal(t, "https://api.brightsky.dev", cfg.BrightSkyBaseURL)
	assert.Equal(t, "https://api.open-meteo.com", cfg.OpenMeteoBaseURL)
	assert.Equal(t, "https://geocoding-api.open-meteo.com", cfg.OpenMeteoGeocodingURL)
	assert.Empty(t, cfg.PlanLocations)
	assert.Equal(t, time.Hour, cfg.PlanInterval)
	assert.Equal(t, 7, cfg.PlanHorizonDays)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("UPSTREAM_MAX_RETRIES", "2")
	t.Setenv("GOOGLE_MAPS_API_KEY", "maps-key")
	t.Setenv("WEATHER_PROVIDER", "openmeteo")
	t.Setenv("BRIGHTSKY_BASE_URL", "http://brightsky.local")
	t.Setenv("PLAN_LOCATIONS", " Berlin , ,Hamburg")
	t.Setenv("PLAN_INTERVAL", "30m")
	t.Setenv("PLAN_HORIZON_DAYS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 2, cfg.UpstreamMaxRetries)
	assert.Equal(t, "maps-key", cfg.GoogleMapsAPIKey)
	assert.Equal(t, GeocoderGoogle, cfg.GeocoderProvider)
	assert.Equal(t, WeatherOpenMeteo, cfg.WeatherProvider)
	assert.Equal(t, "http://brightsky.local", cfg.BrightSkyBaseURL)
	assert.Equal(t, []string{"Berlin", "Hamburg"}, cfg.PlanLocations)
	assert.Equal(t, 30*time.Minute, cfg.PlanInterval)
	assert.Equal(t, 3, cfg.PlanHorizonDays)
}

func TestLoad_GoogleKeyCanBeOverridden(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "maps-key")
	t.Setenv("GEOCODER_PROVIDER", "openmeteo")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, GeocoderOpenMeteo, cfg.GeocoderProvider)
}

func TestLoad_GoogleWithoutKey(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	t.Setenv("GEOCODER_PROVIDER", "google")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_MAPS_API_KEY")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"HTTP_TIMEOUT", "not-a-duration"},
		{"HTTP_TIMEOUT", "-1s"},
		{"SHUTDOWN_TIMEOUT", "0s"},
		{"PLAN_INTERVAL", "soon"},
		{"UPSTREAM_MAX_RETRIES", "many"},
		{"UPSTREAM_MAX_RETRIES", "-1"},
		{"PLAN_HORIZON_DAYS", "-2"},
		{"GEOCODER_PROVIDER", "bing"},
		{"WEATHER_PROVIDER", "darksky"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv("GOOGLE_MAPS_API_KEY", "")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
