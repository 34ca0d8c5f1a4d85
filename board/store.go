package board

import (
	"slices"
	"sync"
	"time"

	"github.com/icodeforyou/spotprice-go/pricing"
)

// Day is the raw price data currently on display, today and (once
// published) tomorrow, together with where it came from.
type Day struct {
	Area              string
	Provider          string
	FetchedAt         time.Time
	TomorrowProvider  string
	TomorrowFetchedAt time.Time
	TodayDate         string
	TomorrowDate      string
	Today             []pricing.RawPriceEntry
	Tomorrow          []pricing.RawPriceEntry
}

type Store struct {
	mu  sync.RWMutex
	day Day
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Set(day Day) {
	day.Today = slices.Clone(day.Today)
	day.Tomorrow = slices.Clone(day.Tomorrow)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.day = day
}

func (s *Store) Get() Day {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.day
}

// View builds the dashboard view of the stored day at the given time.
func (s *Store) View(now time.Time, windowSize, tomorrowCutoffHour int) View {
	day := s.Get()
	return Build(Input{
		Area:               day.Area,
		Provider:           day.Provider,
		FetchedAt:          day.FetchedAt,
		Today:              day.Today,
		Tomorrow:           day.Tomorrow,
		Now:                now,
		WindowSize:         windowSize,
		TomorrowCutoffHour: tomorrowCutoffHour,
	})
}
