package tibber

import (
	"context"
	"fmt"
	"time"

	"github.com/icodeforyou/spotprice-go/hours"
	"github.com/icodeforyou/spotprice-go/pricing"
)

type priceInfo struct {
	StartsAt string  `json:"startsAt"`
	Energy   float64 `json:"energy"`
}

type priceInfoResponse struct {
	CurrentSubscription struct {
		PriceInfo struct {
			Today    []priceInfo `json:"today"`
			Tomorrow []priceInfo `json:"tomorrow"`
		} `json:"priceInfo"`
	} `json:"currentSubscription"`
}

// GetDayPrices asks for today and tomorrow and keeps the entries whose
// Stockholm delivery day is the calendar date of date, in date's own location.
func (t *Tibber) GetDayPrices(ctx context.Context, date time.Time) ([]pricing.RawPriceEntry, error) {
	query := `
		currentSubscription {
			priceInfo {
				today { startsAt energy }
				tomorrow { startsAt energy }
			}
		}`

	body, err := doQuery[priceInfoResponse](ctx, t, query)
	if err != nil {
		return nil, err
	}

	info := body.Data.Viewer.Home.CurrentSubscription.PriceInfo
	day := hours.DateString(date)

	var starts []time.Time
	var energy []float64
	for _, price := range append(info.Today, info.Tomorrow...) {
		startsAt, err := time.Parse(time.RFC3339, price.StartsAt)
		if err != nil {
			return nil, fmt.Errorf("parsing startsAt %q: %w", price.StartsAt, err)
		}
		startsAt = hours.LocationStockholm(startsAt)
		if hours.DateString(startsAt) != day {
			continue
		}
		starts = append(starts, startsAt)
		energy = append(energy, price.Energy)
	}

	prices := make([]pricing.RawPriceEntry, len(starts))
	for i, start := range starts {
		end := start.Add(time.Hour)
		if i+1 < len(starts) {
			end = starts[i+1]
		} else if i > 0 {
			end = start.Add(start.Sub(starts[i-1]))
		}
		prices[i] = pricing.RawPriceEntry{Price: energy[i], TimeStart: start, TimeEnd: end}
	}

	return prices, nil
}
