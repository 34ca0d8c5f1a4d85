package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/icodeforyou/spotprice-go/config"
	"github.com/icodeforyou/spotprice-go/elprisetjustnu"
	"github.com/icodeforyou/spotprice-go/nordpool"
	"github.com/icodeforyou/spotprice-go/pricing"
	"github.com/icodeforyou/spotprice-go/tibber"
	"github.com/icodeforyou/spotprice-go/types"
)

// FromConfig returns the configured price providers in the order they
// should be tried.
func FromConfig(cnfg config.AppConfig) ([]types.PriceProvider, error) {
	area := cnfg.EnergyPrice.GetArea()

	var providers []types.PriceProvider
	for _, name := range cnfg.EnergyPrice.GetProviders() {
		switch strings.ToLower(name) {
		case "elprisetjustnu":
			providers = append(providers, elprisetjustnu.New(area))
		case "nordpool":
			providers = append(providers, nordpool.New(area))
		case "tibber":
			if cnfg.Tibber.ApiToken == "" {
				return nil, fmt.Errorf("provider tibber needs tibber.api_token")
			}
			providers = append(providers, tibber.New(cnfg.Tibber.ApiToken, cnfg.Tibber.HomeId))
		default:
			return nil, fmt.Errorf("unknown price provider %q", name)
		}
	}

	return providers, nil
}

// FetchDay asks the providers in order for the prices of date and returns
// the first day that normalizes to hourly prices, with the provider's name.
// An empty result means no provider had the day, the error then tells why
// each provider failed.
func FetchDay(ctx context.Context, logger *slog.Logger, list []types.PriceProvider, date time.Time) ([]pricing.RawPriceEntry, string, error) {
	dateStr := date.Format("2006-01-02")
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	var errs []error
	for _, provider := range list {
		logger := logger.With(slog.String("provider", provider.Name()), slog.String("date", dateStr))

		entries, err := provider.GetDayPrices(ctx, midnight)
		if err != nil {
			logger.Warn("error fetching energy prices", slog.Any("error", err))
			errs = append(errs, fmt.Errorf("%s: %w", provider.Name(), err))
			continue
		}
		if len(entries) == 0 {
			logger.Debug("no prices published")
			continue
		}
		if _, err := pricing.NormalizeToHourly(entries); err != nil {
			logger.Warn("unusable energy prices", slog.Any("error", err))
			errs = append(errs, fmt.Errorf("%s: %w", provider.Name(), err))
			continue
		}

		logger.Debug("energy prices fetched", slog.Int("entries", len(entries)))
		return entries, provider.Name(), nil
	}

	return []pricing.RawPriceEntry{}, "", errors.Join(errs...)
}
