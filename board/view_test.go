package board

import (
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/icodeforyou/spotprice-go/pricing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

var cet = time.FixedZone("CET", 3600)

func rawDay(date time.Time, prices ...float64) []pricing.RawPriceEntry {
	entries := make([]pricing.RawPriceEntry, len(prices))
	for i, p := range prices {
		start := date.Add(time.Duration(i) * time.Hour)
		entries[i] = pricing.RawPriceEntry{Price: p, TimeStart: start, TimeEnd: start.Add(time.Hour)}
	}
	return entries
}

// ramp returns 24 prices from base increasing by step.
func ramp(base, step float64) []float64 {
	prices := make([]float64, pricing.HoursPerDay)
	for i := range prices {
		prices[i] = base + float64(i)*step
	}
	return prices
}

func at(hour int) time.Time {
	return time.Date(2025, time.January, 15, hour, 30, 0, 0, cet)
}

var (
	todayDate    = time.Date(2025, time.January, 15, 0, 0, 0, 0, cet)
	tomorrowDate = time.Date(2025, time.January, 16, 0, 0, 0, 0, cet)
)

func TestBuildCurrentAndNext(t *testing.T) {
	today := rawDay(todayDate, ramp(0.10, 0.10)...)
	tomorrow := rawDay(tomorrowDate, ramp(0.05, 0.01)...)

	tests := []struct {
		name        string
		tomorrow    []pricing.RawPriceEntry
		hour        int
		currentHour int
		nextPrice   float64
		nextDate    string
		trend       Trend
	}{
		{"middle of the day", nil, 10, 10, 1.20, "2025-01-15", TrendUp},
		{"last hour rolls over to tomorrow", tomorrow, 23, 23, 0.05, "2025-01-16", TrendDown},
		{"last hour without tomorrow", nil, 23, 23, 2.40, "2025-01-15", TrendFlat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Build(Input{Today: today, Tomorrow: tt.tomorrow, Now: at(tt.hour), WindowSize: 3, TomorrowCutoffHour: 13})
			if v.Current.Hour != tt.currentHour || !v.HasCurrent() {
				t.Errorf("current got %+v", v.Current)
			}
			if !almostEqual(v.Next.AvgPrice, tt.nextPrice) || v.Next.Date != tt.nextDate {
				t.Errorf("next got %+v, wanted %.2f on %s", v.Next, tt.nextPrice, tt.nextDate)
			}
			if v.Trend != tt.trend {
				t.Errorf("trend got %s, wanted %s", v.Trend, tt.trend)
			}
		})
	}
}

func TestBuildEmptyDay(t *testing.T) {
	v := Build(Input{Now: at(8), WindowSize: 3, TomorrowCutoffHour: 13})

	if v.HasCurrent() || v.Current.Label != "--:--" {
		t.Errorf("expected a placeholder for the current price, got %+v", v.Current)
	}
	if v.HasStats || v.TodayStats != nil || v.TomorrowStats != nil {
		t.Errorf("expected no stats")
	}
	if v.Window != nil {
		t.Errorf("expected no window, got %+v", v.Window)
	}
	if v.PricePosition != 0 || v.Trend != TrendFlat {
		t.Errorf("got position %v trend %s", v.PricePosition, v.Trend)
	}
	if len(v.Today) != 0 || v.Today == nil {
		t.Errorf("expected an empty, non-nil today slice")
	}
	if len(v.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", v.Warnings)
	}
}

func TestBuildUnevenDay(t *testing.T) {
	// The last hour is missing without any clock change
	v := Build(Input{Today: rawDay(todayDate, ramp(0.1, 0.1)[:23]...), Now: at(5), WindowSize: 3})

	if len(v.Today) != 0 || v.HasStats {
		t.Errorf("expected the uneven day to be treated as empty")
	}
	if len(v.Warnings) != 1 || !strings.HasPrefix(v.Warnings[0], "today: ") {
		t.Errorf("got warnings %v", v.Warnings)
	}
}

func TestBuildPriceScale(t *testing.T) {
	today := rawDay(todayDate, ramp(0, 0.1)...) // 0.0 .. 2.3

	v := Build(Input{Today: today, Now: at(0), WindowSize: 3})
	if v.PricePosition != 0 {
		t.Errorf("position at min got %v", v.PricePosition)
	}
	if v.CurrentColor.Hue != pricing.HueCheap {
		t.Errorf("color at min got %v", v.CurrentColor)
	}

	v = Build(Input{Today: today, Now: at(23), WindowSize: 3})
	if !almostEqual(v.PricePosition, 100) {
		t.Errorf("position at max got %v", v.PricePosition)
	}
	if v.CurrentColor.Hue != pricing.HueExpensive {
		t.Errorf("color at max got %v", v.CurrentColor)
	}

	flat := rawDay(todayDate, ramp(0.5, 0)...)
	v = Build(Input{Today: flat, Now: at(12), WindowSize: 3})
	if v.PricePosition != 0 {
		t.Errorf("position on a flat day got %v", v.PricePosition)
	}
	if v.CurrentColor.Hue != pricing.HueCheap {
		t.Errorf("color on a flat day got %v", v.CurrentColor)
	}
}

func TestBuildTomorrowFlags(t *testing.T) {
	today := rawDay(todayDate, ramp(1.0, 0)...)
	tomorrow := rawDay(tomorrowDate, ramp(1.2, 0)...)

	tests := []struct {
		name       string
		tomorrow   []pricing.RawPriceEntry
		hour       int
		ready      bool
		awaiting   bool
		comparison bool
	}{
		{"morning", nil, 9, false, false, false},
		{"cutoff without tomorrow", nil, 13, false, true, false},
		{"cutoff with tomorrow", tomorrow, 13, true, false, false},
		{"hour after cutoff with tomorrow", tomorrow, 14, true, false, true},
		{"evening without tomorrow", nil, 20, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Build(Input{Today: today, Tomorrow: tt.tomorrow, Now: at(tt.hour), WindowSize: 3, TomorrowCutoffHour: 13})
			if v.TomorrowReady != tt.ready || v.AwaitingTomorrow != tt.awaiting || v.ShowTomorrowComparison != tt.comparison {
				t.Errorf("got ready=%v awaiting=%v comparison=%v", v.TomorrowReady, v.AwaitingTomorrow, v.ShowTomorrowComparison)
			}
			if tt.ready && !almostEqual(v.AvgDiffPercent, 20) {
				t.Errorf("avg diff got %v, wanted 20", v.AvgDiffPercent)
			}
		})
	}
}

func TestBuildAvgDiffWithZeroAverage(t *testing.T) {
	prices := ramp(0, 0)
	prices[0], prices[1] = -0.5, 0.5
	v := Build(Input{
		Today:              rawDay(todayDate, prices...),
		Tomorrow:           rawDay(tomorrowDate, ramp(0.3, 0)...),
		Now:                at(15),
		WindowSize:         3,
		TomorrowCutoffHour: 13,
	})
	if v.AvgDiffPercent != 0 {
		t.Errorf("got %v, wanted 0 for a zero average today", v.AvgDiffPercent)
	}
	if !v.ShowTomorrowComparison {
		t.Errorf("expected the comparison to show")
	}
}

func TestBuildWindow(t *testing.T) {
	prices := ramp(1.0, 0)
	prices[2], prices[3], prices[4] = 0.1, 0.1, 0.1

	v := Build(Input{Today: rawDay(todayDate, prices...), Now: at(0), WindowSize: 3})
	if v.Window == nil {
		t.Fatalf("expected a window")
	}
	if *v.Window != (pricing.ChargingWindow{StartHour: 2, EndHour: 5, AvgPrice: v.Window.AvgPrice, IsTomorrow: false}) {
		t.Errorf("got %+v", *v.Window)
	}
	if !almostEqual(v.Window.AvgPrice, 0.1) {
		t.Errorf("avg got %v", v.Window.AvgPrice)
	}

	v = Build(Input{Today: rawDay(todayDate, prices...), Now: at(0), WindowSize: 0})
	if v.WindowSize != pricing.DefaultWindowSize {
		t.Errorf("window size got %d", v.WindowSize)
	}
}

func TestStore(t *testing.T) {
	s := NewStore()
	today := rawDay(todayDate, ramp(0.1, 0.1)...)

	s.Set(Day{Area: "SE3", Provider: "test", TodayDate: "2025-01-15", Today: today})
	today[0].Price = 99

	day := s.Get()
	if day.Area != "SE3" || len(day.Today) != 24 {
		t.Fatalf("got %+v", day)
	}
	if day.Today[0].Price == 99 {
		t.Errorf("store shares the caller's slice")
	}

	v := s.View(at(1), 3, 13)
	if v.Area != "SE3" || v.Provider != "test" || !almostEqual(v.Current.AvgPrice, 0.2) {
		t.Errorf("got view %+v", v)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		i := i
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Set(Day{Area: "SE3", Today: today, Provider: string(rune('a' + i))})
		}()
		go func() {
			defer wg.Done()
			_ = s.View(at(i), 3, 13)
		}()
	}
	wg.Wait()
}
