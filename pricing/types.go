package pricing

import (
	"fmt"
	"time"
)

const HoursPerDay = 24

// RawPriceEntry is one published price interval (hour or quarter) in SEK per kWh.
type RawPriceEntry struct {
	Price     float64   `json:"SEK_per_kWh"`
	TimeStart time.Time `json:"time_start"`
	TimeEnd   time.Time `json:"time_end"`
}

type HourlyPrice struct {
	Hour     int     `json:"hour"`
	AvgPrice float64 `json:"avgPrice"`
	Label    string  `json:"label"`
	Date     string  `json:"date"` // YYYY-MM-DD
}

type DailyStats struct {
	Min HourlyPrice `json:"min"`
	Max HourlyPrice `json:"max"`
	Avg float64     `json:"avg"`
}

type ChargingWindow struct {
	StartHour  int     `json:"startHour"`
	EndHour    int     `json:"endHour"` // 1-24, a window ending at midnight ends at 24
	AvgPrice   float64 `json:"avgPrice"`
	IsTomorrow bool    `json:"isTomorrow"`
}

// Label returns the window as "HH:00–HH:00".
func (w ChargingWindow) Label() string {
	return fmt.Sprintf("%02d:00–%02d:00", w.StartHour, w.EndHour)
}

func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00–%02d:00", hour, hour+1)
}
