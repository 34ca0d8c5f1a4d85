package mqtt

import (
	"encoding/json"
	"time"

	"github.com/icodeforyou/spotprice-go/board"
	"github.com/icodeforyou/spotprice-go/pricing"
)

type windowPayload struct {
	Start    int     `json:"start"`
	End      int     `json:"end"`
	Label    string  `json:"label"`
	AvgPrice float64 `json:"avg_price"`
	Tomorrow bool    `json:"tomorrow"`
}

// Prices are in SEK/kWh, pointers are null when there is no price.
type statePayload struct {
	Area          string         `json:"area"`
	Hour          int            `json:"hour"`
	Current       *float64       `json:"current"`
	Next          *float64       `json:"next"`
	Min           *float64       `json:"min"`
	Max           *float64       `json:"max"`
	Avg           *float64       `json:"avg"`
	Trend         board.Trend    `json:"trend"`
	PricePosition float64        `json:"price_position"`
	CurrentColor  string         `json:"current_color,omitempty"`
	NextColor     string         `json:"next_color,omitempty"`
	TomorrowReady bool           `json:"tomorrow_ready"`
	TomorrowAvg   *float64       `json:"tomorrow_avg"`
	Window        *windowPayload `json:"window"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func ptr(f float64) *float64 {
	return &f
}

func newWindowPayload(w *pricing.ChargingWindow) *windowPayload {
	if w == nil {
		return nil
	}
	return &windowPayload{
		Start:    w.StartHour,
		End:      w.EndHour,
		Label:    w.Label(),
		AvgPrice: w.AvgPrice,
		Tomorrow: w.IsTomorrow,
	}
}

func newStatePayload(v board.View) statePayload {
	p := statePayload{
		Area:          v.Area,
		Hour:          v.CurrentHour,
		Trend:         v.Trend,
		PricePosition: v.PricePosition,
		TomorrowReady: v.TomorrowReady,
		Window:        newWindowPayload(v.Window),
		UpdatedAt:     v.Now,
	}

	if v.HasCurrent() {
		p.Current = ptr(v.Current.AvgPrice)
		p.Next = ptr(v.Next.AvgPrice)
	}
	if v.HasStats {
		p.Min = ptr(v.TodayStats.Min.AvgPrice)
		p.Max = ptr(v.TodayStats.Max.AvgPrice)
		p.Avg = ptr(v.TodayStats.Avg)
		p.CurrentColor = v.CurrentColor.Hex()
		p.NextColor = v.NextColor.Hex()
	}
	if v.TomorrowStats != nil {
		p.TomorrowAvg = ptr(v.TomorrowStats.Avg)
	}

	return p
}

// payloads returns the state and window messages, an empty window message
// clears the retained one.
func payloads(v board.View) ([]byte, []byte, error) {
	state, err := json.Marshal(newStatePayload(v))
	if err != nil {
		return nil, nil, err
	}

	if v.Window == nil {
		return state, []byte{}, nil
	}
	window, err := json.Marshal(newWindowPayload(v.Window))
	if err != nil {
		return nil, nil, err
	}
	return state, window, nil
}
