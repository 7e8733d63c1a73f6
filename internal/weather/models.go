package weather

// Observation is one timestamped weather reading for a location.
// Nil numeric fields mean the provider had no value for that reading.
type Observation struct {
	Timestamp     string   `json:"timestamp"`     // ISO-8601, provider local offset
	Temperature   *float64 `json:"temperature"`   // °C
	WindSpeed     *float64 `json:"wind_speed"`    // km/h
	Sunshine      *float64 `json:"sunshine"`      // minutes
	Precipitation *float64 `json:"precipitation"` // mm
}

// Date returns the calendar date portion (YYYY-MM-DD) of the timestamp.
// No timezone conversion is applied.
func (o Observation) Date() string {
	if len(o.Timestamp) < len("2006-01-02") {
		return o.Timestamp
	}
	return o.Timestamp[:len("2006-01-02")]
}

// DailySummary is the per-calendar-date view of a location's observations.
type DailySummary struct {
	Date               string  `json:"date"`
	AvgTemperature     float64 `json:"avg_temperature"`
	AvgWindSpeed       float64 `json:"avg_wind_speed"`
	TotalSunshine      float64 `json:"total_sunshine"`
	TotalPrecipitation float64 `json:"total_precipitation"`

	// Observations is the number of readings bucketed into Date.
	Observations int `json:"observations"`
}

// LocationResult is the best qualifying day for one location.
// Found is false when no day qualified.
type LocationResult struct {
	Location      string  `json:"location"`
	Date          string  `json:"date,omitempty"`
	TotalSunshine float64 `json:"total_sunshine"`
	Found         bool    `json:"found"`
}

// GlobalResult is the best LocationResult across all requested locations.
type GlobalResult struct {
	Best  LocationResult `json:"best"`
	Found bool           `json:"found"`
}

// Coordinates is a geocoded latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
