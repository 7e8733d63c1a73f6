package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-party-planner/internal/weather"
)

const openMeteoHourly = "temperature_2m,wind_speed_10m,sunshine_duration,precipitation"

// OpenMeteoProvider implements weather.Provider for Open-Meteo hourly data.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(httpCfg HTTPClientConfig, baseURL string) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: httpCfg,
		circuit: newCircuitBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// FetchObservations converts Open-Meteo's column-oriented hourly series into
// observations. Sunshine duration arrives in seconds and is reported in minutes.
func (p *OpenMeteoProvider) FetchObservations(ctx context.Context, at weather.Coordinates, from, to string) ([]weather.Observation, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", at.Lat))
		values.Set("longitude", fmt.Sprintf("%f", at.Lon))
		values.Set("hourly", openMeteoHourly)
		values.Set("start_date", datePart(from))
		values.Set("end_date", datePart(to))

		u := fmt.Sprintf("%s/v1/forecast?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Hourly struct {
			Time          []string   `json:"time"`
			Temperature2m []*float64 `json:"temperature_2m"`
			WindSpeed10m  []*float64 `json:"wind_speed_10m"`
			Sunshine      []*float64 `json:"sunshine_duration"`
			Precipitation []*float64 `json:"precipitation"`
		} `json:"hourly"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode openmeteo response: %w", err)
	}

	h := payload.Hourly
	if len(h.Time) == 0 {
		return nil, weather.ErrNotFound
	}

	observations := make([]weather.Observation, len(h.Time))
	for i, ts := range h.Time {
		o := weather.Observation{
			Timestamp:     ts,
			Temperature:   valueAt(h.Temperature2m, i),
			WindSpeed:     valueAt(h.WindSpeed10m, i),
			Precipitation: valueAt(h.Precipitation, i),
		}
		if secs := valueAt(h.Sunshine, i); secs != nil {
			minutes := *secs / 60
			o.Sunshine = &minutes
		}
		observations[i] = o
	}

	return observations, nil
}

// OpenMeteoGeocoder implements weather.Geocoder with the keyless Open-Meteo
// geocoding API.
type OpenMeteoGeocoder struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoGeocoder(httpCfg HTTPClientConfig, baseURL string) *OpenMeteoGeocoder {
	return &OpenMeteoGeocoder{
		name:    "openmeteo-geocoding",
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: httpCfg,
		circuit: newCircuitBreaker("openmeteo-geocoding"),
	}
}

func (g *OpenMeteoGeocoder) Name() string {
	return g.name
}

func (g *OpenMeteoGeocoder) Geocode(ctx context.Context, address string) (weather.Coordinates, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("name", address)
		values.Set("count", "1")

		u := fmt.Sprintf("%s/v1/search?%s", g.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, g.httpCfg, g.circuit, buildRequest)
	if err != nil {
		return weather.Coordinates{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Coordinates{}, fmt.Errorf("decode geocoding response: %w", err)
	}

	if len(payload.Results) == 0 {
		return weather.Coordinates{}, fmt.Errorf("%w for %q", weather.ErrNoMatch, address)
	}

	return weather.Coordinates{
		Lat: payload.Results[0].Latitude,
		Lon: payload.Results[0].Longitude,
	}, nil
}

// valueAt returns the i-th value of a series that may be shorter than the time axis.
func valueAt(series []*float64, i int) *float64 {
	if i >= len(series) {
		return nil
	}
	return series[i]
}

// datePart trims a date-time to its YYYY-MM-DD prefix.
func datePart(s string) string {
	if len(s) > len("2006-01-02") {
		return s[:len("2006-01-02")]
	}
	return s
}
