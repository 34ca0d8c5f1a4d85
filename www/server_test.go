package www

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/icodeforyou/spotprice-go/board"
	"github.com/icodeforyou/spotprice-go/config"
	"github.com/icodeforyou/spotprice-go/database"
	"github.com/icodeforyou/spotprice-go/pricing"
	"github.com/icodeforyou/spotprice-go/www/chartjs"
)

var cet = time.FixedZone("CET", 3600)

func rawDay(date time.Time, price func(hour int) float64) []pricing.RawPriceEntry {
	entries := make([]pricing.RawPriceEntry, pricing.HoursPerDay)
	for i := range entries {
		start := date.Add(time.Duration(i) * time.Hour)
		entries[i] = pricing.RawPriceEntry{Price: price(i), TimeStart: start, TimeEnd: start.Add(time.Hour)}
	}
	return entries
}

type testServer struct {
	*Server
	db        *database.Database
	refreshed int
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(db.Close)

	today := time.Date(2025, time.January, 15, 0, 0, 0, 0, cet)
	store := board.NewStore()
	store.Set(board.Day{
		Area:         "SE3",
		Provider:     "elprisetjustnu",
		FetchedAt:    today.Add(13 * time.Hour),
		TodayDate:    "2025-01-15",
		TomorrowDate: "2025-01-16",
		Today:        rawDay(today, func(h int) float64 { return 0.1 + float64(h)*0.1 }),
		Tomorrow:     rawDay(today.AddDate(0, 0, 1), func(int) float64 { return 0.05 }),
	})

	ts := &testServer{db: db}
	s, err := NewServer(db, store, func() { ts.refreshed++ }, &config.AppConfig{})
	if err != nil {
		t.Fatalf("NewServer() error: %v", err)
	}
	s.now = func() time.Time { return time.Date(2025, time.January, 15, 14, 30, 0, 0, cet) }
	ts.Server = s
	return ts
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	return rec
}

type snapshot struct {
	WindowSize  int `json:"windowSize"`
	CurrentHour int `json:"currentHour"`
	Current     struct {
		AvgPrice float64 `json:"avgPrice"`
	} `json:"current"`
	Window *struct {
		StartHour  int  `json:"startHour"`
		IsTomorrow bool `json:"isTomorrow"`
	} `json:"window"`
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) snapshot {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body.String())
	}
	var s snapshot
	if err := json.NewDecoder(rec.Body).Decode(&s); err != nil {
		t.Fatalf("invalid snapshot: %v", err)
	}
	return s
}

func TestSnapshot(t *testing.T) {
	ts := newTestServer(t)

	s := decodeSnapshot(t, ts.do(httptest.NewRequest(http.MethodGet, "/api/snapshot", nil)))
	if s.WindowSize != 3 || s.CurrentHour != 14 {
		t.Errorf("got %+v", s)
	}
	if s.Current.AvgPrice < 1.49 || s.Current.AvgPrice > 1.51 {
		t.Errorf("current price got %v", s.Current.AvgPrice)
	}
	if s.Window == nil || s.Window.StartHour != 0 || !s.Window.IsTomorrow {
		t.Errorf("window got %+v", s.Window)
	}

	if rec := ts.do(httptest.NewRequest(http.MethodPost, "/api/snapshot", nil)); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST got status %d", rec.Code)
	}
}

func TestRefresh(t *testing.T) {
	ts := newTestServer(t)

	if rec := ts.do(httptest.NewRequest(http.MethodPost, "/api/refresh", nil)); rec.Code != http.StatusAccepted {
		t.Errorf("got status %d", rec.Code)
	}
	if ts.refreshed != 1 {
		t.Errorf("price task ran %d times", ts.refreshed)
	}
	if rec := ts.do(httptest.NewRequest(http.MethodGet, "/api/refresh", nil)); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET got status %d", rec.Code)
	}
}

func TestChart(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/chart", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d", rec.Code)
	}

	var chart chartjs.Chart
	if err := json.NewDecoder(rec.Body).Decode(&chart); err != nil {
		t.Fatalf("invalid chart: %v", err)
	}
	if chart.Type != "bar" || len(chart.Data.Labels) != 48 {
		t.Fatalf("got type %s with %d labels", chart.Type, len(chart.Data.Labels))
	}
	if chart.Data.Labels[0] != "00:00" || chart.Data.Labels[24] != "+00:00" {
		t.Errorf("labels got %v", chart.Data.Labels)
	}

	ds := chart.Data.Datasets[0]
	if ds.BackgroundColor[0] != "hsl(140, 87.5%, 50%)" {
		t.Errorf("cheapest bar color got %s", ds.BackgroundColor[0])
	}
	if !strings.HasPrefix(ds.BackgroundColor[23], "hsl(0, ") {
		t.Errorf("most expensive bar color got %s", ds.BackgroundColor[23])
	}

	var highlighted []int
	for i, c := range ds.BorderColor {
		if c == chartjs.ColorHighlight {
			highlighted = append(highlighted, i)
		}
	}
	if len(highlighted) != 3 || highlighted[0] != 24 || highlighted[2] != 26 {
		t.Errorf("highlighted bars got %v", highlighted)
	}
}

func TestSettings(t *testing.T) {
	ts := newTestServer(t)

	post := func(value string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/settings", strings.NewReader(url.Values{"window_hours": {value}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return ts.do(req)
	}

	rec := post("5")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected a session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/snapshot", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	if s := decodeSnapshot(t, ts.do(req)); s.WindowSize != 5 {
		t.Errorf("window size with cookie got %d, wanted 5", s.WindowSize)
	}

	if s := decodeSnapshot(t, ts.do(httptest.NewRequest(http.MethodGet, "/api/snapshot", nil))); s.WindowSize != 3 {
		t.Errorf("window size without cookie got %d, wanted 3", s.WindowSize)
	}

	for _, value := range []string{"0", "9", "abc", ""} {
		if rec := post(value); rec.Code != http.StatusBadRequest {
			t.Errorf("window_hours=%q got status %d", value, rec.Code)
		}
	}
}

func TestDashboard(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Electricity price SE3",
		"Cheapest 3 hours",
		"Tomorrow 00:00–03:00",
		"1.50",
		"Prices from elprisetjustnu",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard is missing %q", want)
		}
	}

	if rec := ts.do(httptest.NewRequest(http.MethodGet, "/missing", nil)); rec.Code != http.StatusNotFound {
		t.Errorf("unknown path got status %d", rec.Code)
	}
}

func TestLogPages(t *testing.T) {
	ts := newTestServer(t)
	err := ts.db.SaveLogEntry(context.Background(), database.LogEntryRow{
		Timestamp: time.Now(),
		Level:     int(slog.LevelWarn),
		Message:   "nordpool unavailable",
	})
	if err != nil {
		t.Fatal(err)
	}

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/log", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "<title>Log</title>") {
		t.Errorf("log page got status %d", rec.Code)
	}

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/log?page=1", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "nordpool unavailable") {
		t.Errorf("log entries got status %d: %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/log?page=1&level=error", nil))
	if strings.Contains(rec.Body.String(), "nordpool unavailable") {
		t.Errorf("expected the warning to be filtered out")
	}
}

func TestStaticFiles(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/static/css/style.css", "/static/js/app.js"} {
		if rec := ts.do(httptest.NewRequest(http.MethodGet, path, nil)); rec.Code != http.StatusOK {
			t.Errorf("%s got status %d", path, rec.Code)
		}
	}
}

func TestRealtimeBroadcast(t *testing.T) {
	ts := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ts.hub.Run(ctx)

	srv := httptest.NewServer(ts.Handler())
	defer srv.Close()

	conn, _, err := ws.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for ts.hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	fragment, err := ts.realtimeFragment()
	if err != nil {
		t.Fatalf("realtimeFragment() error: %v", err)
	}
	if !strings.Contains(string(fragment), "1.50") || !strings.Contains(string(fragment), "14:30:00") {
		t.Errorf("fragment got %s", fragment)
	}
	ts.hub.Broadcast <- fragment

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if string(msg) != string(fragment) {
		t.Errorf("got %s", msg)
	}
}
