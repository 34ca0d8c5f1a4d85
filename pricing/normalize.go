package pricing

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnevenResolution = errors.New("number of price entries is not a multiple of 24")

// NormalizeToHourly aggregates one day of price entries into 24 hourly buckets.
// Entries are expected in chronological order with hourly or evenly divided
// sub-hourly resolution. An empty input gives an empty result.
//
// Days when the clock moves (23 or 25 hours) are bucketed by the wall clock
// hour of each entry instead, see normalizeByWallClock.
func NormalizeToHourly(entries []RawPriceEntry) ([]HourlyPrice, error) {
	if len(entries) == 0 {
		return []HourlyPrice{}, nil
	}

	if len(entries)%HoursPerDay != 0 {
		if hourly, ok := normalizeByWallClock(entries); ok {
			return hourly, nil
		}
		return nil, fmt.Errorf("normalizing %d entries: %w", len(entries), ErrUnevenResolution)
	}

	perHour := len(entries) / HoursPerDay
	hourly := make([]HourlyPrice, 0, HoursPerDay)
	for h := 0; h < HoursPerDay; h++ {
		slice := entries[h*perHour : (h+1)*perHour]

		sum := 0.0
		for _, e := range slice {
			sum += e.Price
		}

		hourly = append(hourly, HourlyPrice{
			Hour:     h,
			AvgPrice: sum / float64(len(slice)),
			Label:    HourLabel(h),
			Date:     datePart(slice[0]),
		})
	}

	return hourly, nil
}

// normalizeByWallClock handles daylight saving days. Every hour must hold
// exactly one interval's worth of entries, except the hour the clock skips,
// which is empty and takes the price of the hour before, and the hour the
// clock repeats, which holds twice as many and is averaged. Both are only
// accepted where the UTC offset of the entries changes.
func normalizeByWallClock(entries []RawPriceEntry) ([]HourlyPrice, bool) {
	step := entries[0].TimeEnd.Sub(entries[0].TimeStart)
	if step <= 0 || time.Hour%step != 0 {
		return nil, false
	}
	perHour := int(time.Hour / step)
	date := datePart(entries[0])

	var buckets [HoursPerDay][]RawPriceEntry
	for _, e := range entries {
		if datePart(e) != date {
			return nil, false
		}
		h := e.TimeStart.Hour()
		buckets[h] = append(buckets[h], e)
	}

	hourly := make([]HourlyPrice, 0, HoursPerDay)
	for h, bucket := range buckets {
		switch len(bucket) {
		case perHour:
		case 0:
			if h == 0 || h == HoursPerDay-1 || len(buckets[h+1]) == 0 ||
				offset(buckets[h-1][0]) == offset(buckets[h+1][0]) {
				return nil, false
			}
			hourly = append(hourly, HourlyPrice{
				Hour:     h,
				AvgPrice: hourly[h-1].AvgPrice,
				Label:    HourLabel(h),
				Date:     date,
			})
			continue
		case 2 * perHour:
			if offset(bucket[0]) == offset(bucket[len(bucket)-1]) {
				return nil, false
			}
		default:
			return nil, false
		}

		sum := 0.0
		for _, e := range bucket {
			sum += e.Price
		}
		hourly = append(hourly, HourlyPrice{
			Hour:     h,
			AvgPrice: sum / float64(len(bucket)),
			Label:    HourLabel(h),
			Date:     date,
		})
	}

	return hourly, true
}

func offset(e RawPriceEntry) int {
	_, off := e.TimeStart.Zone()
	return off
}

// The date is taken in the offset the source wrote the timestamp in,
// i.e. the local delivery day.
func datePart(e RawPriceEntry) string {
	return e.TimeStart.Format("2006-01-02")
}
