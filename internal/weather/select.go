package weather

// SelectOptimalDay scans days in order and keeps the qualifying day with the
// greatest total sunshine. Equal sunshine never replaces the current pick.
func SelectOptimalDay(location string, days []DailySummary, policy SuitabilityPolicy) LocationResult {
	best := LocationResult{Location: location}

	for _, d := range days {
		if !policy.Qualifies(d) {
			continue
		}
		if !best.Found || d.TotalSunshine > best.TotalSunshine {
			best.Date = d.Date
			best.TotalSunshine = d.TotalSunshine
			best.Found = true
		}
	}

	return best
}

// Reduce picks the location result with the greatest total sunshine among
// those that found a day. The first result wins ties.
func Reduce(results []LocationResult) GlobalResult {
	var global GlobalResult

	for _, r := range results {
		if !r.Found {
			continue
		}
		if !global.Found || r.TotalSunshine > global.Best.TotalSunshine {
			global.Best = r
			global.Found = true
		}
	}

	return global
}
