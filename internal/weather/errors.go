package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by providers when they hold no data for the
	// requested location and date range.
	ErrNotFound = errors.New("no weather data for location and range")

	// ErrNoMatch is returned by geocoders when the address resolves to nothing.
	ErrNoMatch = errors.New("no geocoding match")
)

const (
	msgWeatherNotFound = "No weather data found for the given location and date range."
	msgWeatherFailed   = "Failed to fetch weather data."
)

// GeocodeError aborts a plan when a location cannot be geocoded.
type GeocodeError struct {
	Location string
	Err      error
}

func (e *GeocodeError) Error() string {
	return fmt.Sprintf("geocode %q: %v", e.Location, e.Err)
}

func (e *GeocodeError) Unwrap() error { return e.Err }

// Message is the caller-facing description. The geocoder's message is
// appended to the location verbatim.
func (e *GeocodeError) Message() string {
	return "Failed to geocode location: " + e.Location + e.Err.Error()
}

// WeatherFetchError aborts a plan when observations for a location cannot
// be fetched.
type WeatherFetchError struct {
	Location string
	Err      error
}

func (e *WeatherFetchError) Error() string {
	return fmt.Sprintf("fetch weather for %q: %v", e.Location, e.Err)
}

func (e *WeatherFetchError) Unwrap() error { return e.Err }

// NotFound reports whether the provider had no data, as opposed to failing.
func (e *WeatherFetchError) NotFound() bool {
	return errors.Is(e.Err, ErrNotFound)
}

// Message is the caller-facing description. Provider details stay out of it.
func (e *WeatherFetchError) Message() string {
	reason := msgWeatherFailed
	if e.NotFound() {
		reason = msgWeatherNotFound
	}
	return fmt.Sprintf("Failed to fetch weather data for location %s due to error: %s", e.Location, reason)
}
