package nordpool

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleResponse = `{
	"deliveryDateCET": "2025-01-15",
	"version": 2,
	"market": "DayAhead",
	"currency": "SEK",
	"deliveryAreas": ["SE3"],
	"multiAreaEntries": [
		{"deliveryStart": "2025-01-14T23:00:00Z", "deliveryEnd": "2025-01-15T00:00:00Z", "entryPerArea": {"SE3": 412.34}},
		{"deliveryStart": "2025-01-15T00:00:00Z", "deliveryEnd": "2025-01-15T01:00:00Z", "entryPerArea": {"SE3": -5.5}},
		{"deliveryStart": "2025-01-15T01:00:00Z", "deliveryEnd": "2025-01-15T02:00:00Z", "entryPerArea": {"SE4": 800}}
	]
}`

func TestGetDayPrices(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	n := NewWithBaseURL("SE3", srv.URL)
	prices, err := n.GetDayPrices(context.Background(), time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery != "date=2025-01-15&market=DayAhead&deliveryArea=SE3&currency=SEK" {
		t.Errorf("got query %q", gotQuery)
	}
	if len(prices) != 2 {
		t.Fatalf("got %d prices, wanted 2 (other areas skipped)", len(prices))
	}
	if prices[0].Price != 0.4123 {
		t.Errorf("got price %f, wanted 0.4123", prices[0].Price)
	}
	if prices[1].Price != -0.0055 {
		t.Errorf("got price %f, wanted -0.0055", prices[1].Price)
	}
	// Delivery day starts at midnight Stockholm time
	if d := prices[0].TimeStart.Format("2006-01-02 15"); d != "2025-01-15 00" {
		t.Errorf("got local start %q, wanted 2025-01-15 00", d)
	}
}

func TestGetDayPricesNotPublished(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	prices, err := NewWithBaseURL("SE3", srv.URL).GetDayPrices(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prices) != 0 {
		t.Errorf("got %d prices, wanted none", len(prices))
	}
}

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1000, 1},
		{412.34, 0.4123},
		{412.36, 0.4124},
		{0, 0},
	}
	for _, tt := range tests {
		if got := normalizePrice(tt.in); got != tt.want {
			t.Errorf("normalizePrice(%f) got %f, wanted %f", tt.in, got, tt.want)
		}
	}
}
