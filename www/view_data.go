package www

import (
	"time"

	"github.com/icodeforyou/spotprice-go/board"
	"github.com/icodeforyou/spotprice-go/pricing"
	"github.com/icodeforyou/spotprice-go/types/maybe"
)

type hourRow struct {
	pricing.HourlyPrice
	Color    pricing.HSL
	Current  bool
	InWindow bool
}

type dashboardData struct {
	board.View
	TodayRows     []hourRow
	TomorrowRows  []hourRow
	WindowOptions []int
	Realtime      realtimeData
}

type realtimeData struct {
	Now          time.Time
	Area         string
	CurrentLabel string
	Current      maybe.Maybe[float64]
	Next         maybe.Maybe[float64]
	Color        pricing.HSL
	Trend        board.Trend
	Position     float64
}

func newRealtimeData(v board.View) realtimeData {
	rtd := realtimeData{
		Now:          v.Now,
		Area:         v.Area,
		CurrentLabel: v.Current.Label,
		Color:        v.CurrentColor,
		Trend:        v.Trend,
		Position:     v.PricePosition,
	}
	if v.HasCurrent() {
		rtd.Current = maybe.Some(v.Current.AvgPrice)
		rtd.Next = maybe.Some(v.Next.AvgPrice)
	} else {
		rtd.Current = maybe.None[float64]()
		rtd.Next = maybe.None[float64]()
	}
	return rtd
}

// windowIndexes returns the positions of the window's hours in today's
// hours followed by tomorrow's.
func windowIndexes(v board.View) map[int]bool {
	idx := make(map[int]bool)
	if v.Window == nil {
		return idx
	}
	first := v.Window.StartHour
	if v.Window.IsTomorrow {
		first += len(v.Today)
	}
	for i := 0; i < v.WindowSize; i++ {
		idx[first+i] = true
	}
	return idx
}

func newDashboardData(v board.View, windowOptions []int) dashboardData {
	inWindow := windowIndexes(v)

	rows := func(prices []pricing.HourlyPrice, offset int, stats *pricing.DailyStats) []hourRow {
		out := make([]hourRow, len(prices))
		for i, p := range prices {
			out[i] = hourRow{
				HourlyPrice: p,
				Color:       pricing.PriceColor(p.AvgPrice, stats.Min.AvgPrice, stats.Max.AvgPrice),
				Current:     offset == 0 && i == v.CurrentHour,
				InWindow:    inWindow[offset+i],
			}
		}
		return out
	}

	data := dashboardData{
		View:          v,
		WindowOptions: windowOptions,
		Realtime:      newRealtimeData(v),
	}
	if v.TodayStats != nil {
		data.TodayRows = rows(v.Today, 0, v.TodayStats)
	}
	if v.TomorrowStats != nil {
		data.TomorrowRows = rows(v.Tomorrow, len(v.Today), v.TomorrowStats)
	}
	return data
}
