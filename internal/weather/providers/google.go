package providers

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-party-planner/internal/common"
	"github.com/i474232898/weather-party-planner/internal/weather"
)

// GoogleGeocoder implements weather.Geocoder with the Google Maps Geocoding
// API through github.com/kelvins/geocoder.
type GoogleGeocoder struct {
	name    string
	timeout time.Duration
	circuit *gobreaker.CircuitBreaker
	lookup  func(geocoder.Address) (geocoder.Location, error)
}

// NewGoogleGeocoder configures the geocoder package with apiKey. The key is
// process-wide, so only one Google key can be active at a time. Each lookup
// is abandoned after timeout; zero leaves only the caller's deadline.
func NewGoogleGeocoder(apiKey string, timeout time.Duration) *GoogleGeocoder {
	geocoder.ApiKey = apiKey

	return &GoogleGeocoder{
		name:    "google",
		timeout: timeout,
		circuit: newCircuitBreaker("google-geocoding"),
		lookup:  geocoder.Geocoding,
	}
}

func (g *GoogleGeocoder) Name() string {
	return g.name
}

type lookupResult struct {
	loc geocoder.Location
	err error
}

// Geocode returns the coordinates of the first match for address.
func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (weather.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return weather.Coordinates{}, err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	result, err := g.circuit.Execute(func() (interface{}, error) {
		loc, err := g.lookupWithContext(ctx, address)
		if err != nil && isNoResults(err) {
			return nil, fmt.Errorf("%w: %v", weather.ErrNoMatch, err)
		}
		return loc, err
	})
	if err != nil {
		return weather.Coordinates{}, err
	}

	loc, ok := result.(geocoder.Location)
	if !ok {
		return weather.Coordinates{}, fmt.Errorf("unexpected result type from circuit breaker")
	}

	return weather.Coordinates{Lat: loc.Latitude, Lon: loc.Longitude}, nil
}

// lookupWithContext runs the blocking lookup in the background and gives up
// when ctx is done. The library concatenates the address into the query
// string as is, so it is escaped here.
func (g *GoogleGeocoder) lookupWithContext(ctx context.Context, address string) (geocoder.Location, error) {
	done := make(chan lookupResult, 1)

	go func() {
		defer func() {
			// The library indexes into an empty result set on some statuses.
			if r := recover(); r != nil {
				done <- lookupResult{err: fmt.Errorf("geocoding lookup panicked: %v", r)}
			}
		}()

		loc, err := g.lookup(geocoder.Address{City: url.QueryEscape(address)})
		done <- lookupResult{loc: loc, err: err}
	}()

	select {
	case <-ctx.Done():
		return geocoder.Location{}, ctx.Err()
	case r := <-done:
		return r.loc, r.err
	}
}

func isNoResults(err error) bool {
	return common.HasAny(strings.ToLower(err.Error()), "zero_results", "no results")
}
