package hours

import (
	"testing"
	"time"
)

func TestDateHourString(t *testing.T) {
	dh := DateHour{Date: "2025-01-01", Hour: 5}
	expected := "2025-01-01 05"
	if s := dh.String(); s != expected {
		t.Errorf("String() expected %q, got %q", expected, s)
	}
}

func TestDateHourAdd(t *testing.T) {
	tests := []struct {
		name     string
		input    DateHour
		addHours int
		expected DateHour
	}{
		{
			name:     "add within same day",
			input:    DateHour{Date: "2025-01-01", Hour: 10},
			addHours: 2,
			expected: DateHour{Date: "2025-01-01", Hour: 12},
		},
		{
			name:     "add crossing midnight",
			input:    DateHour{Date: "2025-01-01", Hour: 23},
			addHours: 2,
			expected: DateHour{Date: "2025-01-02", Hour: 1},
		},
		{
			name:     "add negative hours",
			input:    DateHour{Date: "2025-01-01", Hour: 1},
			addHours: -2,
			expected: DateHour{Date: "2024-12-31", Hour: 23},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.input.Add(tt.addHours)
			if result != tt.expected {
				t.Errorf("Add(%d) expected %+v, got %+v", tt.addHours, tt.expected, result)
			}
		})
	}
}

func TestDateHourIsZero(t *testing.T) {
	var dh DateHour
	if !dh.IsZero() {
		t.Errorf("expected a zero value DateHour to be zero")
	}
	dh = DateHour{Date: "2025-01-01", Hour: 0}
	if dh.IsZero() {
		t.Errorf("expected a DateHour with a date not to be zero")
	}
}

func TestFromTime(t *testing.T) {
	tm := time.Date(2025, time.January, 1, 15, 30, 0, 0, time.UTC)
	if dh := FromTime(tm); dh != (DateHour{Date: "2025-01-01", Hour: 15}) {
		t.Errorf("FromTime() got %+v", dh)
	}

	// Wall clock of the given location, not UTC
	local := LocationStockholm(time.Date(2025, time.January, 1, 23, 30, 0, 0, time.UTC))
	if dh := FromTime(local); dh != (DateHour{Date: "2025-01-02", Hour: 0}) {
		t.Errorf("FromTime() in Stockholm got %+v", dh)
	}

	var zero time.Time
	if !FromTime(zero).IsZero() {
		t.Errorf("FromTime() with zero time expected a zero DateHour")
	}
}

func TestTomorrow(t *testing.T) {
	// Spring forward in Stockholm, the day is 23 hours long
	tm := time.Date(2025, time.March, 30, 0, 0, 0, 0, stockholmLoc)
	if got := DateString(Tomorrow(tm)); got != "2025-03-31" {
		t.Errorf("Tomorrow() got %s, wanted 2025-03-31", got)
	}
	tm = time.Date(2025, time.December, 31, 18, 0, 0, 0, stockholmLoc)
	if got := DateString(Tomorrow(tm)); got != "2026-01-01" {
		t.Errorf("Tomorrow() got %s, wanted 2026-01-01", got)
	}
}

func TestSetGuiTimezone(t *testing.T) {
	defer SetGuiTimezone("Europe/Stockholm")

	if err := SetGuiTimezone("Not/AZone"); err == nil {
		t.Errorf("expected an error for an unknown timezone")
	}
	if err := SetGuiTimezone("UTC"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if GuiLocation() != time.UTC {
		t.Errorf("got location %s, wanted UTC", GuiLocation())
	}
	tm := time.Date(2025, time.July, 1, 12, 0, 0, 0, stockholmLoc)
	if got := FormatTimeInGuiTimezone(tm); got != "2025-07-01 10:00:00" {
		t.Errorf("FormatTimeInGuiTimezone() got %s", got)
	}
}

func TestLocationStockholm(t *testing.T) {
	tmWinter := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	_, offsetWinter := LocationStockholm(tmWinter).Zone()
	if offsetWinter != 3600 {
		t.Errorf("LocationStockholm() on winter date expected offset 3600 seconds, got %d", offsetWinter)
	}

	tmSummer := time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)
	_, offsetSummer := LocationStockholm(tmSummer).Zone()
	if offsetSummer != 7200 {
		t.Errorf("LocationStockholm() on summer date expected offset 7200 seconds, got %d", offsetSummer)
	}
}
