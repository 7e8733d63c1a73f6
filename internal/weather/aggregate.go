package weather

// AggregateDaily buckets observations by calendar date and returns one
// DailySummary per date, in order of each date's first appearance.
// Temperature and wind speed are averaged over every observation in the
// bucket; sunshine and precipitation are summed. Missing fields count as zero.
func AggregateDaily(observations []Observation) []DailySummary {
	if len(observations) == 0 {
		return nil
	}

	type bucket struct {
		sumTemp  float64
		sumWind  float64
		sunshine float64
		precip   float64
		count    int
	}

	var order []string
	buckets := make(map[string]*bucket)

	for _, o := range observations {
		date := o.Date()
		b, ok := buckets[date]
		if !ok {
			b = &bucket{}
			buckets[date] = b
			order = append(order, date)
		}

		b.sumTemp += valueOrZero(o.Temperature)
		b.sumWind += valueOrZero(o.WindSpeed)
		b.sunshine += valueOrZero(o.Sunshine)
		b.precip += valueOrZero(o.Precipitation)
		b.count++
	}

	days := make([]DailySummary, 0, len(order))
	for _, date := range order {
		b := buckets[date]
		n := float64(b.count)

		days = append(days, DailySummary{
			Date:               date,
			AvgTemperature:     b.sumTemp / n,
			AvgWindSpeed:       b.sumWind / n,
			TotalSunshine:      b.sunshine,
			TotalPrecipitation: b.precip,
			Observations:       b.count,
		})
	}

	return days
}
