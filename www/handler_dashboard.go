package www

import (
	"log/slog"
	"net/http"
)

func NewDashboardHandler(logger *slog.Logger, s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		data := newDashboardData(s.view(r), s.settings.windowOptions())

		w.Header().Set("Content-Type", "text/html")
		if err := s.tm.ExecuteToWriter("dashboard.html", data, w); err != nil {
			logger.Error("handling dashboard request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
