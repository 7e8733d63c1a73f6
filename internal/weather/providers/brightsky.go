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

// BrightSkyProvider implements weather.Provider for the Bright Sky API
// (DWD observations and forecasts, hourly, no API key).
type BrightSkyProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewBrightSkyProvider(httpCfg HTTPClientConfig, baseURL string) *BrightSkyProvider {
	return &BrightSkyProvider{
		name:    "brightsky",
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: httpCfg,
		circuit: newCircuitBreaker("brightsky"),
	}
}

func (p *BrightSkyProvider) Name() string {
	return p.name
}

// FetchObservations returns the hourly records between from and to.
// Bright Sky answers 404 when it has no station data for the area or range.
func (p *BrightSkyProvider) FetchObservations(ctx context.Context, at weather.Coordinates, from, to string) ([]weather.Observation, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", fmt.Sprintf("%f", at.Lat))
		values.Set("lon", fmt.Sprintf("%f", at.Lon))
		values.Set("date", from)
		values.Set("last_date", to)

		u := fmt.Sprintf("%s/weather?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Weather []weather.Observation `json:"weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode brightsky response: %w", err)
	}

	return payload.Weather, nil
}
