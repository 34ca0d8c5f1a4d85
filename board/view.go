package board

import (
	"fmt"
	"math"
	"time"

	"github.com/icodeforyou/spotprice-go/pricing"
)

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// Price changes smaller than this, in SEK/kWh, count as flat.
const trendThreshold = 0.005

const placeholderLabel = "--:--"

type Input struct {
	Area      string
	Provider  string
	FetchedAt time.Time
	Today     []pricing.RawPriceEntry
	Tomorrow  []pricing.RawPriceEntry
	// Local wall clock time, its hour is the current hour of today
	Now                time.Time
	WindowSize         int
	TomorrowCutoffHour int
}

type View struct {
	Area          string                `json:"area"`
	Provider      string                `json:"provider"`
	FetchedAt     time.Time             `json:"fetchedAt"`
	Now           time.Time             `json:"now"`
	Today         []pricing.HourlyPrice `json:"today"`
	Tomorrow      []pricing.HourlyPrice `json:"tomorrow"`
	TodayStats    *pricing.DailyStats   `json:"todayStats"`
	TomorrowStats *pricing.DailyStats   `json:"tomorrowStats"`

	CurrentHour   int                 `json:"currentHour"`
	Current       pricing.HourlyPrice `json:"current"`
	Next          pricing.HourlyPrice `json:"next"`
	HasStats      bool                `json:"hasStats"`
	CurrentColor  pricing.HSL         `json:"currentColor"`
	NextColor     pricing.HSL         `json:"nextColor"`
	PricePosition float64             `json:"pricePosition"` // 0-100 within today's range
	Trend         Trend               `json:"trend"`

	TomorrowReady          bool        `json:"tomorrowReady"`
	AwaitingTomorrow       bool        `json:"awaitingTomorrow"`
	ShowTomorrowComparison bool        `json:"showTomorrowComparison"`
	TomorrowAvgColor       pricing.HSL `json:"tomorrowAvgColor"`
	AvgDiffPercent         float64     `json:"avgDiffPercent"`

	WindowSize int                     `json:"windowSize"`
	Window     *pricing.ChargingWindow `json:"window"`

	Warnings []string `json:"warnings,omitempty"`
}

// HasCurrent is false when there is no price for the current hour.
func (v View) HasCurrent() bool {
	return v.Current.Label != placeholderLabel
}

// Color returns the color of a price on today's scale.
func (v View) Color(price float64) pricing.HSL {
	if v.TodayStats == nil {
		return pricing.PriceColor(price, 0, 0)
	}
	return pricing.PriceColor(price, v.TodayStats.Min.AvgPrice, v.TodayStats.Max.AvgPrice)
}

func Build(in Input) View {
	v := View{
		Area:        in.Area,
		Provider:    in.Provider,
		FetchedAt:   in.FetchedAt,
		Now:         in.Now,
		CurrentHour: in.Now.Hour(),
		WindowSize:  in.WindowSize,
		Trend:       TrendFlat,
	}
	if v.WindowSize < 1 {
		v.WindowSize = pricing.DefaultWindowSize
	}

	v.Today = v.normalize("today", in.Today)
	v.Tomorrow = v.normalize("tomorrow", in.Tomorrow)

	if len(v.Today) > 0 {
		stats := pricing.GetDailyStats(v.Today)
		v.TodayStats = &stats
		v.HasStats = true
	}
	if len(v.Tomorrow) > 0 {
		stats := pricing.GetDailyStats(v.Tomorrow)
		v.TomorrowStats = &stats
	}

	v.Current = pricing.HourlyPrice{Hour: v.CurrentHour, Label: placeholderLabel}
	if v.CurrentHour < len(v.Today) {
		v.Current = v.Today[v.CurrentHour]
	}

	switch {
	case v.CurrentHour+1 < pricing.HoursPerDay && v.CurrentHour+1 < len(v.Today):
		v.Next = v.Today[v.CurrentHour+1]
	case len(v.Tomorrow) > 0:
		v.Next = v.Tomorrow[0]
	default:
		v.Next = v.Current
	}

	if v.HasStats {
		lo, hi := v.TodayStats.Min.AvgPrice, v.TodayStats.Max.AvgPrice
		v.CurrentColor = pricing.PriceColor(v.Current.AvgPrice, lo, hi)
		v.NextColor = pricing.PriceColor(v.Next.AvgPrice, lo, hi)
		if hi > lo {
			v.PricePosition = math.Max(0, math.Min(100, (v.Current.AvgPrice-lo)/(hi-lo)*100))
		}
	}

	if v.HasCurrent() {
		diff := v.Next.AvgPrice - v.Current.AvgPrice
		if diff > trendThreshold {
			v.Trend = TrendUp
		} else if diff < -trendThreshold {
			v.Trend = TrendDown
		}
	}

	v.TomorrowReady = len(v.Tomorrow) > 0
	v.AwaitingTomorrow = !v.TomorrowReady && v.CurrentHour >= in.TomorrowCutoffHour
	v.ShowTomorrowComparison = v.TomorrowReady && v.HasStats && v.CurrentHour >= in.TomorrowCutoffHour+1

	if v.TomorrowReady && v.HasStats {
		v.TomorrowAvgColor = v.Color(v.TomorrowStats.Avg)
		if v.TodayStats.Avg != 0 {
			v.AvgDiffPercent = (v.TomorrowStats.Avg - v.TodayStats.Avg) / v.TodayStats.Avg * 100
		}
	}

	if len(v.Today) > 0 {
		if w, ok := pricing.FindChargingWindow(v.Today, v.Tomorrow, v.CurrentHour, v.WindowSize); ok {
			v.Window = &w
		}
	}

	return v
}

func (v *View) normalize(name string, entries []pricing.RawPriceEntry) []pricing.HourlyPrice {
	hourly, err := pricing.NormalizeToHourly(entries)
	if err != nil {
		v.Warnings = append(v.Warnings, fmt.Sprintf("%s: %v", name, err))
		return []pricing.HourlyPrice{}
	}
	return hourly
}
