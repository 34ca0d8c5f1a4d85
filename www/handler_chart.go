package www

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/icodeforyou/spotprice-go/board"
	"github.com/icodeforyou/spotprice-go/pricing"
	"github.com/icodeforyou/spotprice-go/www/chartjs"
)

// priceChart draws today's hours followed by tomorrow's, each day colored on
// its own price range, with the cheap window outlined.
func priceChart(v board.View) chartjs.Chart {
	labels := make([]string, 0, len(v.Today)+len(v.Tomorrow))
	for _, p := range v.Today {
		labels = append(labels, fmt.Sprintf("%02d:00", p.Hour))
	}
	for _, p := range v.Tomorrow {
		labels = append(labels, fmt.Sprintf("+%02d:00", p.Hour))
	}

	chart := chartjs.NewBarChart("", labels)
	fill := func(prices []pricing.HourlyPrice, offset int, stats *pricing.DailyStats) {
		for i, p := range prices {
			color := pricing.PriceColor(p.AvgPrice, stats.Min.AvgPrice, stats.Max.AvgPrice)
			chart.SetBar(offset+i, p.AvgPrice, color.String())
		}
	}
	if v.TodayStats != nil {
		fill(v.Today, 0, v.TodayStats)
	}
	if v.TomorrowStats != nil {
		fill(v.Tomorrow, len(v.Today), v.TomorrowStats)
	}

	for i := range windowIndexes(v) {
		chart.Highlight(i)
	}

	chart.Options.Scales["y"] = chart.Options.Scales["y"].WithTitle("SEK/kWh")
	return chart
}

func NewChartHandler(logger *slog.Logger, s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(priceChart(s.view(r)))
		if err != nil {
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, "unable to encode data points", http.StatusInternalServerError)
			return
		}
	}
}
