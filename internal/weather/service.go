package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/weather-party-planner/internal/observability"
)

// Service plans a party: it geocodes each location, fetches its observations,
// and picks the sunniest qualifying day across all of them.
type Service struct {
	geocoder Geocoder
	provider Provider
	policy   SuitabilityPolicy
	metrics  *observability.Metrics
	log      *zap.SugaredLogger
}

// NewService creates a new Service using DefaultPolicy.
func NewService(geocoder Geocoder, provider Provider, metrics *observability.Metrics, log *zap.SugaredLogger) *Service {
	return &Service{
		geocoder: geocoder,
		provider: provider,
		policy:   DefaultPolicy,
		metrics:  metrics,
		log:      log,
	}
}

// WithPolicy returns a copy of the service that judges days by p.
func (s *Service) WithPolicy(p SuitabilityPolicy) *Service {
	cp := *s
	cp.policy = p
	return &cp
}

// Plan walks locations in order and returns the best qualifying day overall.
// The first location that fails to geocode or fetch aborts the whole plan
// with a *GeocodeError or *WeatherFetchError; later locations are not queried.
func (s *Service) Plan(ctx context.Context, locations []string, from, to string) (GlobalResult, error) {
	if s.geocoder == nil || s.provider == nil {
		return GlobalResult{}, fmt.Errorf("planner is missing a geocoder or weather provider")
	}

	results := make([]LocationResult, 0, len(locations))

	for _, raw := range locations {
		location := strings.TrimSpace(raw)

		result, err := s.planLocation(ctx, location, from, to)
		if err != nil {
			return GlobalResult{}, err
		}
		results = append(results, result)
	}

	global := Reduce(results)
	if global.Found {
		s.log.Infow("optimal day found",
			"location", global.Best.Location,
			"date", global.Best.Date,
			"sunshine", global.Best.TotalSunshine)
	} else {
		s.log.Infow("no optimal day found", "locations", len(locations))
	}

	return global, nil
}

func (s *Service) planLocation(ctx context.Context, location, from, to string) (LocationResult, error) {
	coords, err := s.geocode(ctx, location)
	if err != nil {
		s.log.Errorw("failed to geocode location", "location", location, "error", err)
		return LocationResult{}, &GeocodeError{Location: location, Err: err}
	}

	observations, err := s.fetch(ctx, coords, from, to)
	if err != nil {
		s.log.Errorw("failed to fetch weather data",
			"location", location,
			"provider", s.provider.Name(),
			"error", err)
		return LocationResult{}, &WeatherFetchError{Location: location, Err: err}
	}

	days := AggregateDaily(observations)

	qualifying := 0
	for _, d := range days {
		if s.policy.Qualifies(d) {
			qualifying++
		}
	}
	s.metrics.QualifyingDays.Observe(float64(qualifying))

	result := SelectOptimalDay(location, days, s.policy)
	s.log.Debugw("location evaluated",
		"location", location,
		"observations", len(observations),
		"days", len(days),
		"qualifying", qualifying,
		"found", result.Found,
		"date", result.Date)

	return result, nil
}

func (s *Service) geocode(ctx context.Context, location string) (Coordinates, error) {
	start := time.Now()
	coords, err := s.geocoder.Geocode(ctx, location)
	s.metrics.UpstreamDuration.WithLabelValues("geocode").Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		s.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	case errors.Is(err, ErrNoMatch):
		s.metrics.GeocodeRequests.WithLabelValues("no_match").Inc()
	default:
		s.metrics.GeocodeRequests.WithLabelValues("error").Inc()
	}
	return coords, err
}

func (s *Service) fetch(ctx context.Context, at Coordinates, from, to string) ([]Observation, error) {
	start := time.Now()
	observations, err := s.provider.FetchObservations(ctx, at, from, to)
	s.metrics.UpstreamDuration.WithLabelValues("weather").Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		s.metrics.WeatherFetches.WithLabelValues("success").Inc()
	case errors.Is(err, ErrNotFound):
		s.metrics.WeatherFetches.WithLabelValues("not_found").Inc()
	default:
		s.metrics.WeatherFetches.WithLabelValues("error").Inc()
	}
	return observations, err
}
