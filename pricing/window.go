package pricing

const DefaultWindowSize = 3

type candidate struct {
	HourlyPrice
	isTomorrow bool
}

// FindChargingWindow searches the hours that are not yet past, from
// currentHour today through the end of tomorrow, for the windowSize
// consecutive hours with the lowest total price. The earliest window wins
// ties. When too few hours remain, all of today is searched instead. The
// second return value is false when no window fits at all.
func FindChargingWindow(today, tomorrow []HourlyPrice, currentHour, windowSize int) (ChargingWindow, bool) {
	if windowSize < 1 {
		windowSize = DefaultWindowSize
	}
	currentHour = max(0, min(currentHour, len(today)))

	future := make([]candidate, 0, len(today)-currentHour+len(tomorrow))
	for _, h := range today[currentHour:] {
		future = append(future, candidate{HourlyPrice: h})
	}
	for _, h := range tomorrow {
		future = append(future, candidate{HourlyPrice: h, isTomorrow: true})
	}

	if len(future) < windowSize {
		if len(today) < windowSize {
			return ChargingWindow{}, false
		}
		future = future[:0]
		for _, h := range today {
			future = append(future, candidate{HourlyPrice: h})
		}
	}

	start, sum := cheapestRun(future, windowSize)
	first := future[start]

	return ChargingWindow{
		StartHour:  first.Hour,
		EndHour:    endHour(first.Hour, windowSize),
		AvgPrice:   sum / float64(windowSize),
		IsTomorrow: first.isTomorrow,
	}, true
}

// cheapestRun requires len(seq) >= size.
func cheapestRun(seq []candidate, size int) (int, float64) {
	bestIdx := 0
	bestSum := 0.0
	for i := 0; i <= len(seq)-size; i++ {
		sum := 0.0
		for _, c := range seq[i : i+size] {
			sum += c.AvgPrice
		}
		if i == 0 || sum < bestSum {
			bestIdx, bestSum = i, sum
		}
	}
	return bestIdx, bestSum
}

func endHour(start, size int) int {
	end := (start + size) % HoursPerDay
	if end == 0 {
		return HoursPerDay
	}
	return end
}
