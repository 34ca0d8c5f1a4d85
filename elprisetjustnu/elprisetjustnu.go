package elprisetjustnu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/icodeforyou/spotprice-go/pricing"
)

const DefaultBaseURL = "https://www.elprisetjustnu.se/api/v1/prices"

type rawPrice struct {
	SEKPerKWh float64   `json:"SEK_per_kWh"`
	EURPerKWh float64   `json:"EUR_per_kWh"`
	EXR       float64   `json:"EXR"`
	TimeStart time.Time `json:"time_start"`
	TimeEnd   time.Time `json:"time_end"`
}

type ElPrisetJustNu struct {
	area    string
	baseURL string
	client  *http.Client
}

func New(area string) ElPrisetJustNu {
	return NewWithBaseURL(area, DefaultBaseURL)
}

func NewWithBaseURL(area, baseURL string) ElPrisetJustNu {
	return ElPrisetJustNu{
		area:    area,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (e ElPrisetJustNu) Name() string {
	return "elprisetjustnu"
}

func (e ElPrisetJustNu) GetDayPrices(ctx context.Context, date time.Time) ([]pricing.RawPriceEntry, error) {
	url := fmt.Sprintf("%s/%d/%02d-%02d_%s.json",
		e.baseURL, date.Year(), int(date.Month()), date.Day(), e.area)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return []pricing.RawPriceEntry{}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var rawPrices []rawPrice
	if err := json.NewDecoder(resp.Body).Decode(&rawPrices); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	prices := make([]pricing.RawPriceEntry, 0, len(rawPrices))
	for _, raw := range rawPrices {
		prices = append(prices, pricing.RawPriceEntry{
			Price:     raw.SEKPerKWh,
			TimeStart: raw.TimeStart,
			TimeEnd:   raw.TimeEnd,
		})
	}

	return prices, nil
}
