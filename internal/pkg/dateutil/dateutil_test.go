package dateutil

import (
	"testing"
	"time"
)

func TestDayKey(t *testing.T) {
	cases := []struct {
		input time.Time
		want  string
	}{
		{time.Date(2025, 11, 3, 9, 15, 0, 0, time.UTC), "2025-11-03"},
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "2025-01-01"},
		{time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC), "2025-12-31"},
	}
	for _, c := range cases {
		got := DayKey(c.input)
		if got != c.want {
			t.Errorf("DayKey(%v) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestMonthStart(t *testing.T) {
	in := time.Date(2025, 11, 17, 14, 30, 0, 0, time.UTC)
	want := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	if got := MonthStart(in); !got.Equal(want) {
		t.Errorf("MonthStart(%v) = %v, want %v", in, got, want)
	}
}

func TestMonthEnd(t *testing.T) {
	cases := []struct {
		input time.Time
		want  time.Time
	}{
		{time.Date(2025, 11, 17, 14, 30, 0, 0, time.UTC), time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC), time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)}, // leap year
		{time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC), time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		if got := MonthEnd(c.input); !got.Equal(c.want) {
			t.Errorf("MonthEnd(%v) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestMonthPrefix(t *testing.T) {
	cases := []struct {
		year, month int
		want        string
	}{
		{2025, 11, "2025-11-"},
		{2025, 1, "2025-01-"},
		{999, 9, "0999-09-"},
	}
	for _, c := range cases {
		got := MonthPrefix(c.year, c.month)
		if got != c.want {
			t.Errorf("MonthPrefix(%d, %d) = %q, want %q", c.year, c.month, got, c.want)
		}
	}
}
