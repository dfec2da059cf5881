package worktime

import (
	"testing"
	"time"
)

func TestSessionMinutes(t *testing.T) {
	base := time.Date(2025, 3, 17, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		checkOut time.Time
		want     int
	}{
		{"seventy five minutes", base.Add(75 * time.Minute), 75},
		{"zero duration", base, 0},
		{"fractional minute truncates down", base.Add(59 * time.Second), 0},
		{"almost two minutes", base.Add(119 * time.Second), 1},
		{"negative span clamps to zero", base.Add(-time.Minute), 0},
		{"whole day", base.Add(24 * time.Hour), 1440},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SessionMinutes(base, tt.checkOut); got != tt.want {
				t.Errorf("SessionMinutes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOvertime(t *testing.T) {
	tests := []struct {
		name       string
		cumulative int
		want       int
	}{
		{"below threshold", 300, 0},
		{"exactly at threshold", 500, 0},
		{"one minute over", 501, 1},
		{"well over", 620, 120},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overtime(tt.cumulative, 500); got != tt.want {
				t.Errorf("Overtime(%d, 500) = %d, want %d", tt.cumulative, got, tt.want)
			}
		})
	}
}

func TestFormatSession(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{75, "1:15:00"},
		{0, "0:00:00"},
		{1, "0:01:00"},
		{500, "8:20:00"},
		{600, "10:00:00"},
		// Hour component is unbounded, not wrapped at 24.
		{1500, "25:00:00"},
	}

	for _, tt := range tests {
		if got := FormatSession(tt.minutes); got != tt.want {
			t.Errorf("FormatSession(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "00:00:00"},
		{75, "01:15:00"},
		{500, "08:20:00"},
		{501, "08:21:00"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.minutes); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestDayBounds(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatal(err)
	}

	now := time.Date(2025, 3, 17, 23, 45, 12, 0, loc)
	start, end := DayBounds(now)

	if !start.Equal(time.Date(2025, 3, 17, 0, 0, 0, 0, loc)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2025, 3, 18, 0, 0, 0, 0, loc)) {
		t.Errorf("end = %v", end)
	}
	if !start.Before(now) || !now.Before(end) {
		t.Errorf("now %v not inside [%v, %v)", now, start, end)
	}
}
