package www

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func NewSnapshotHandler(logger *slog.Logger, s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.view(r)); err != nil {
			logger.Error("handling snapshot request", slog.Any("error", err))
			http.Error(w, "unable to encode snapshot", http.StatusInternalServerError)
		}
	}
}

// NewRefreshHandler runs the price task, the new prices are picked up by
// the next snapshot or broadcast.
func NewRefreshHandler(logger *slog.Logger, task func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		logger.Info("manual price refresh")
		task()
		w.WriteHeader(http.StatusAccepted)
	}
}
