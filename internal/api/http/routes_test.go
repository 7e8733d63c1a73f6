package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/i474232898/weather-party-planner/internal/observability"
	"github.com/i474232898/weather-party-planner/internal/weather"
)

type fakePlanner struct {
	result      weather.GlobalResult
	err         error
	shouldPanic bool

	called    bool
	locations []string
	from, to  string
}

func (p *fakePlanner) Plan(_ context.Context, locations []string, from, to string) (weather.GlobalResult, error) {
	if p.shouldPanic {
		panic("boom")
	}
	p.called = true
	p.locations = locations
	p.from, p.to = from, to
	return p.result, p.err
}

func doGet(t *testing.T, planner Planner, target string) (int, map[string]string) {
	t.Helper()

	app := NewApp(planner, observability.NewMetricsForTesting(), zap.NewNop().Sugar())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return resp.StatusCode, body
}

func TestPartyPlan_Found(t *testing.T) {
	planner := &fakePlanner{result: weather.GlobalResult{
		Found: true,
		Best:  weather.LocationResult{Location: "CityA", Date: "2024-06-01", TotalSunshine: 120, Found: true},
	}}

	status, body := doGet(t, planner, "/party_plan?locations=CityA&from=2024-06-01&to=2024-06-07")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]string{"date": "2024-06-01", "location": "CityA"}, body)
	assert.Equal(t, []string{"CityA"}, planner.locations)
	assert.Equal(t, "2024-06-01", planner.from)
	assert.Equal(t, "2024-06-07", planner.to)
}

func TestPartyPlan_SplitsAndTrimsLocations(t *testing.T) {
	planner := &fakePlanner{}

	_, _ = doGet(t, planner, "/party_plan?locations=Berlin,%20Munich%20,Hamburg&from=a&to=b")

	assert.Equal(t, []string{"Berlin", "Munich", "Hamburg"}, planner.locations)
}

func TestPartyPlan_NothingFound(t *testing.T) {
	status, body := doGet(t, &fakePlanner{}, "/party_plan?locations=CityA,CityB&from=2024-06-01&to=2024-06-07")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]string{"message": "No optimal date and location found."}, body)
}

func TestPartyPlan_MissingParameters(t *testing.T) {
	targets := []string{
		"/party_plan",
		"/party_plan?locations=CityA&to=2024-06-07",
		"/party_plan?locations=CityA&from=2024-06-01",
		"/party_plan?from=2024-06-01&to=2024-06-07",
		"/party_plan?locations=&from=2024-06-01&to=2024-06-07",
	}

	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			planner := &fakePlanner{}
			status, body := doGet(t, planner, target)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "Please provide locations, from date, and to date.", body["error"])
			assert.False(t, planner.called, "no outbound calls on invalid input")
		})
	}
}

func TestPartyPlan_GeocodeFailure(t *testing.T) {
	planner := &fakePlanner{err: &weather.GeocodeError{Location: "CityB", Err: errors.New(": no results")}}

	status, body := doGet(t, planner, "/party_plan?locations=CityA,CityB,CityC&from=2024-06-01&to=2024-06-07")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Failed to geocode location: CityB: no results", body["error"])
}

func TestPartyPlan_WeatherFailure(t *testing.T) {
	planner := &fakePlanner{err: &weather.WeatherFetchError{Location: "CityA", Err: weather.ErrNotFound}}

	status, body := doGet(t, planner, "/party_plan?locations=CityA&from=2024-06-01&to=2024-06-07")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t,
		"Failed to fetch weather data for location CityA due to error: No weather data found for the given location and date range.",
		body["error"])
}

func TestPartyPlan_UnexpectedError(t *testing.T) {
	planner := &fakePlanner{err: errors.New("secret internal detail")}

	status, body := doGet(t, planner, "/party_plan?locations=CityA&from=2024-06-01&to=2024-06-07")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to process the request.", body["error"])
}

func TestPartyPlan_PanicIsRecovered(t *testing.T) {
	status, body := doGet(t, &fakePlanner{shouldPanic: true}, "/party_plan?locations=CityA&from=2024-06-01&to=2024-06-07")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to process the request.", body["error"])
}

func TestHealth(t *testing.T) {
	status, body := doGet(t, &fakePlanner{}, "/health")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	app := NewApp(&fakePlanner{}, observability.NewMetricsForTesting(), zap.NewNop().Sugar())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "go_goroutines")
}

type stubGeocoder struct {
	fail  string
	calls []string
}

func (g *stubGeocoder) Name() string { return "stub" }

func (g *stubGeocoder) Geocode(_ context.Context, address string) (weather.Coordinates, error) {
	g.calls = append(g.calls, address)
	if address == g.fail {
		return weather.Coordinates{}, fmt.Errorf("%w: ZERO_RESULTS", weather.ErrNoMatch)
	}
	return weather.Coordinates{Lat: float64(len(g.calls))}, nil
}

type stubProvider struct {
	byLat map[float64][]weather.Observation
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) FetchObservations(_ context.Context, at weather.Coordinates, _, _ string) ([]weather.Observation, error) {
	return p.byLat[at.Lat], nil
}

func ptr(v float64) *float64 { return &v }

func TestPartyPlan_EndToEnd(t *testing.T) {
	sunny := []weather.Observation{{
		Timestamp:     "2024-06-01T12:00:00+00:00",
		Temperature:   ptr(25),
		WindSpeed:     ptr(10),
		Sunshine:      ptr(120),
		Precipitation: ptr(0),
	}}
	rainy := []weather.Observation{{
		Timestamp:     "2024-06-02T12:00:00+00:00",
		Temperature:   ptr(25),
		WindSpeed:     ptr(10),
		Sunshine:      ptr(300),
		Precipitation: ptr(4),
	}}

	newPlanner := func(g *stubGeocoder) Planner {
		prov := &stubProvider{byLat: map[float64][]weather.Observation{1: rainy, 2: sunny}}
		return weather.NewService(g, prov, observability.NewMetricsForTesting(), zap.NewNop().Sugar())
	}

	t.Run("second location wins", func(t *testing.T) {
		geo := &stubGeocoder{}
		status, body := doGet(t, newPlanner(geo), "/party_plan?locations=CityA,CityB&from=2024-06-01&to=2024-06-02")

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, map[string]string{"date": "2024-06-01", "location": "CityB"}, body)
	})

	t.Run("geocode failure stops at the failing location", func(t *testing.T) {
		geo := &stubGeocoder{fail: "CityB"}
		status, body := doGet(t, newPlanner(geo), "/party_plan?locations=CityA,CityB,CityC&from=2024-06-01&to=2024-06-02")

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Failed to geocode location: CityBno geocoding match: ZERO_RESULTS", body["error"])
		assert.Equal(t, []string{"CityA", "CityB"}, geo.calls)
	})
}
