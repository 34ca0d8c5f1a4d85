package task

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/icodeforyou/spotprice-go/board"
	"github.com/icodeforyou/spotprice-go/config"
	"github.com/icodeforyou/spotprice-go/database"
	"github.com/icodeforyou/spotprice-go/hours"
	"github.com/icodeforyou/spotprice-go/pricing"
	"github.com/icodeforyou/spotprice-go/providers"
	"github.com/icodeforyou/spotprice-go/types"
)

type priceFetcher struct {
	logger    *slog.Logger
	db        *database.Database
	store     *board.Store
	providers []types.PriceProvider
	area      string
	cutoff    int
	now       func() time.Time
}

// NewPriceTask keeps the store filled with today's prices and, from the
// cutoff hour, tomorrow's. Prices are cached in the database so a restart
// doesn't need to fetch them again.
func NewPriceTask(
	logger *slog.Logger,
	db *database.Database,
	store *board.Store,
	providers []types.PriceProvider,
	cnfg config.AppConfigEnergyPrice) func() {

	if len(providers) == 0 {
		panic("no energy price providers")
	}

	f := &priceFetcher{
		logger:    logger,
		db:        db,
		store:     store,
		providers: providers,
		area:      cnfg.GetArea(),
		cutoff:    cnfg.GetTomorrowCutoffHour(),
		now:       hours.Now,
	}
	f.start()

	return f.run
}

func (f *priceFetcher) start() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if f.loadCached(ctx) {
		f.logger.Debug("no need for immediate update of energy prices")
		return
	}
	f.logger.Info("need an immediate update of energy prices")
	f.run()
}

// loadCached fills the store from the database and reports whether
// today's prices were found.
func (f *priceFetcher) loadCached(ctx context.Context) bool {
	now := f.now()
	day := board.Day{
		Area:         f.area,
		TodayDate:    hours.DateString(now),
		TomorrowDate: hours.DateString(hours.Tomorrow(now)),
	}

	today, err := f.db.GetPriceDay(ctx, f.area, day.TodayDate)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			f.logger.Error("error reading cached prices", slog.String("date", day.TodayDate), slog.Any("error", err))
		}
		return false
	}
	day.Today = today.Entries
	day.Provider = today.Provider
	day.FetchedAt = today.FetchedAt

	if tomorrow, err := f.db.GetPriceDay(ctx, f.area, day.TomorrowDate); err == nil {
		day.Tomorrow = tomorrow.Entries
		day.TomorrowProvider = tomorrow.Provider
		day.TomorrowFetchedAt = tomorrow.FetchedAt
	}

	f.store.Set(day)
	f.logger.Info("prices loaded from cache",
		slog.String("date", day.TodayDate),
		slog.String("provider", day.Provider),
		slog.Bool("tomorrow", len(day.Tomorrow) > 0))
	return true
}

func (f *priceFetcher) run() {
	f.logger.Debug("running energy price task...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := f.now()
	prev := f.store.Get()
	day := board.Day{
		Area:         f.area,
		Provider:     prev.Provider,
		FetchedAt:    prev.FetchedAt,
		TodayDate:    hours.DateString(now),
		TomorrowDate: hours.DateString(hours.Tomorrow(now)),
	}

	switch day.TodayDate {
	case prev.TodayDate:
		day.Today = prev.Today
		day.Tomorrow = prev.Tomorrow
		day.TomorrowProvider = prev.TomorrowProvider
		day.TomorrowFetchedAt = prev.TomorrowFetchedAt
	case prev.TomorrowDate:
		day.Today = prev.Tomorrow
		day.Provider = prev.TomorrowProvider
		day.FetchedAt = prev.TomorrowFetchedAt
	}

	if len(day.Today) == 0 {
		entries, provider := f.fetchDay(ctx, now)
		if len(entries) == 0 {
			f.logger.Error("energy price task error, no prices for today", slog.String("date", day.TodayDate))
		}
		day.Today = entries
		day.Provider = provider
		day.FetchedAt = now
	}

	if len(day.Tomorrow) == 0 && now.Hour() >= f.cutoff {
		entries, provider := f.fetchDay(ctx, hours.Tomorrow(now))
		if len(entries) == 0 {
			f.logger.Info("tomorrow's prices not published yet", slog.String("date", day.TomorrowDate))
		}
		day.Tomorrow = entries
		day.TomorrowProvider = provider
		day.TomorrowFetchedAt = now
	}

	f.store.Set(day)

	f.logger.Info("energy price task done",
		slog.String("provider", day.Provider),
		slog.Int("today", len(day.Today)),
		slog.Int("tomorrow", len(day.Tomorrow)))
}

// fetchDay returns the first usable day from the providers and caches it.
// Nothing is returned when no provider has the day.
func (f *priceFetcher) fetchDay(ctx context.Context, date time.Time) ([]pricing.RawPriceEntry, string) {
	entries, provider, err := providers.FetchDay(ctx, f.logger, f.providers, date)
	if err != nil {
		f.logger.Debug("no provider could deliver prices", slog.Any("error", err))
	}
	if len(entries) == 0 {
		return entries, provider
	}

	err = f.db.SavePriceDay(ctx, database.PriceDayRow{
		Area:      f.area,
		Date:      hours.DateString(date),
		Provider:  provider,
		FetchedAt: time.Now(),
		Entries:   entries,
	})
	if err != nil {
		f.logger.Error("error caching energy prices", slog.String("date", hours.DateString(date)), slog.Any("error", err))
	}

	return entries, provider
}
