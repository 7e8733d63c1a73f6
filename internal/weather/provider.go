package weather

import (
	"context"
)

// Provider abstracts a source of sub-daily weather observations
// (e.g. Bright Sky, Open-Meteo).
type Provider interface {
	Name() string
	FetchObservations(ctx context.Context, at Coordinates, from, to string) ([]Observation, error)
}

// Geocoder resolves a free-text address to the coordinates of its first match.
// It returns an error wrapping ErrNoMatch when nothing matches.
type Geocoder interface {
	Name() string
	Geocode(ctx context.Context, address string) (Coordinates, error)
}
