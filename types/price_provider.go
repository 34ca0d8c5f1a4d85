package types

import (
	"context"
	"time"

	"github.com/icodeforyou/spotprice-go/pricing"
)

// PriceProvider fetches one delivery day of spot prices. A day that is not
// published yet gives an empty slice and no error.
type PriceProvider interface {
	Name() string
	GetDayPrices(ctx context.Context, date time.Time) ([]pricing.RawPriceEntry, error)
}
