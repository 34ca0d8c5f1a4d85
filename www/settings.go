package www

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const (
	sessionName    = "spotprice"
	windowHoursKey = "window_hours"
)

// settings keeps per browser preferences in a signed cookie.
type settings struct {
	logger       *slog.Logger
	store        sessions.Store
	defaultHours int
	maxHours     int
}

func newSettings(logger *slog.Logger, secret string, defaultHours, maxHours int) *settings {
	key := []byte(secret)
	if secret == "" {
		// Settings are lost on restart, which is fine for a window size
		key = securecookie.GenerateRandomKey(32)
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &settings{
		logger:       logger,
		store:        store,
		defaultHours: defaultHours,
		maxHours:     max(maxHours, defaultHours),
	}
}

func (s *settings) windowHours(r *http.Request) int {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return s.defaultHours
	}
	n, ok := session.Values[windowHoursKey].(int)
	if !ok || n < 1 || n > s.maxHours {
		return s.defaultHours
	}
	return n
}

func (s *settings) windowOptions() []int {
	options := make([]int, s.maxHours)
	for i := range options {
		options[i] = i + 1
	}
	return options
}

func (s *settings) parseWindowHours(r *http.Request) (int, error) {
	n, err := strconv.Atoi(r.FormValue(windowHoursKey))
	if err != nil {
		return 0, fmt.Errorf("invalid window size: %w", err)
	}
	if n < 1 || n > s.maxHours {
		return 0, fmt.Errorf("window size must be between 1 and %d hours", s.maxHours)
	}
	return n, nil
}

func (s *settings) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		n, err := s.parseWindowHours(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// A broken or outdated cookie still yields a usable new session
		session, _ := s.store.Get(r, sessionName)
		session.Values[windowHoursKey] = n
		if err := session.Save(r, w); err != nil {
			s.logger.Error("saving settings", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
