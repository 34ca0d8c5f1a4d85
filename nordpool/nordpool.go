package nordpool

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/icodeforyou/spotprice-go/hours"
	"github.com/icodeforyou/spotprice-go/pricing"
)

const DefaultBaseURL = "https://dataportal-api.nordpoolgroup.com"

type Nordpool struct {
	area    string
	baseURL string
	client  *http.Client
}

func New(area string) Nordpool {
	return NewWithBaseURL(area, DefaultBaseURL)
}

func NewWithBaseURL(area, baseURL string) Nordpool {
	return Nordpool{
		area:    area,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (n Nordpool) Name() string {
	return "nordpool"
}

func (n Nordpool) GetDayPrices(ctx context.Context, date time.Time) ([]pricing.RawPriceEntry, error) {
	url := fmt.Sprintf("%s/api/DayAheadPrices?date=%s&market=DayAhead&deliveryArea=%s&currency=SEK",
		n.baseURL,
		date.Format("2006-01-02"),
		n.area)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}
	defer resp.Body.Close()

	// Nord Pool answers 204 until the auction result is published
	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound {
		return []pricing.RawPriceEntry{}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var data dayAheadPrices
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	prices := make([]pricing.RawPriceEntry, 0, len(data.MultiAreaEntries))
	for _, entry := range data.MultiAreaEntries {
		price, ok := entry.EntryPerArea[n.area]
		if !ok {
			continue
		}
		prices = append(prices, pricing.RawPriceEntry{
			Price:     normalizePrice(price),
			TimeStart: hours.LocationStockholm(entry.DeliveryStart),
			TimeEnd:   hours.LocationStockholm(entry.DeliveryEnd),
		})
	}

	return prices, nil
}

// SEK/MWh to SEK/kWh with four decimals.
func normalizePrice(price float64) float64 {
	precision := math.Pow(10, float64(4))
	return math.Round(price*precision/1e3) / precision
}
