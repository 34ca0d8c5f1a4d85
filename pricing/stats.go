package pricing

// GetDailyStats returns the cheapest and most expensive hour together with
// the mean price. When several hours share an extreme price the earliest
// one is reported. An empty input gives zero stats.
func GetDailyStats(hourly []HourlyPrice) DailyStats {
	if len(hourly) == 0 {
		return DailyStats{}
	}

	minP, maxP := hourly[0], hourly[0]
	sum := 0.0
	for _, h := range hourly {
		if h.AvgPrice < minP.AvgPrice {
			minP = h
		}
		if h.AvgPrice > maxP.AvgPrice {
			maxP = h
		}
		sum += h.AvgPrice
	}

	return DailyStats{
		Min: minP,
		Max: maxP,
		Avg: sum / float64(len(hourly)),
	}
}
