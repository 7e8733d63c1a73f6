package weather

// SuitabilityPolicy holds the bounds a DailySummary must satisfy to be a
// candidate party day. Temperature, wind and sunshine bounds are strict;
// precipitation must equal RequiredPrecipitation exactly.
type SuitabilityPolicy struct {
	MaxWindSpeed          float64 // km/h, exclusive
	MinTemperature        float64 // °C, exclusive
	MaxTemperature        float64 // °C, exclusive
	MinSunshine           float64 // minutes, exclusive
	RequiredPrecipitation float64 // mm, exact
}

// DefaultPolicy is warm, calm, sunny and dry.
var DefaultPolicy = SuitabilityPolicy{
	MaxWindSpeed:          30,
	MinTemperature:        20,
	MaxTemperature:        30,
	MinSunshine:           0,
	RequiredPrecipitation: 0,
}

// Qualifies reports whether the day satisfies every bound of the policy.
func (p SuitabilityPolicy) Qualifies(d DailySummary) bool {
	return d.AvgWindSpeed < p.MaxWindSpeed &&
		d.AvgTemperature > p.MinTemperature &&
		d.AvgTemperature < p.MaxTemperature &&
		d.TotalSunshine > p.MinSunshine &&
		d.TotalPrecipitation == p.RequiredPrecipitation
}
