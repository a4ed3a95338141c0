package domain

import (
	"testing"
	"time"
)

func TestParseGranularity(t *testing.T) {
	tests := []struct {
		raw  string
		want Granularity
	}{
		{"day", GranularityDay},
		{"week", GranularityWeek},
		{"Month", GranularityMonth},
		{" YEAR ", GranularityYear},
		{"all", GranularityAll},
		{"fortnight", GranularityDay},
		{"", GranularityDay},
	}

	for _, tt := range tests {
		if got := ParseGranularity(tt.raw); got != tt.want {
			t.Errorf("ParseGranularity(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestWindowFor(t *testing.T) {
	ref := time.Date(2026, time.March, 15, 14, 30, 0, 0, time.UTC)

	t.Run("day spans midnight to ref", func(t *testing.T) {
		window := WindowFor(GranularityDay, ref, WindowParts{})
		wantStart := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
		if !window.Start.Equal(wantStart) || !window.End.Equal(ref) {
			t.Errorf("got [%v, %v], want [%v, %v]", window.Start, window.End, wantStart, ref)
		}
	})

	t.Run("explicit date spans the whole day", func(t *testing.T) {
		date := time.Date(2026, time.March, 10, 17, 0, 0, 0, time.UTC)
		window := WindowFor(GranularityDay, ref, WindowParts{Date: &date})
		wantStart := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
		wantEnd := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
		if !window.Start.Equal(wantStart) || !window.End.Equal(wantEnd) {
			t.Errorf("got [%v, %v], want [%v, %v]", window.Start, window.End, wantStart, wantEnd)
		}
	})

	t.Run("week covers seven calendar days", func(t *testing.T) {
		window := WindowFor(GranularityWeek, ref, WindowParts{})
		wantStart := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
		if !window.Start.Equal(wantStart) || !window.End.Equal(ref) {
			t.Errorf("got [%v, %v], want [%v, %v]", window.Start, window.End, wantStart, ref)
		}
	})

	t.Run("month defaults to ref month", func(t *testing.T) {
		window := WindowFor(GranularityMonth, ref, WindowParts{})
		wantStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
		if !window.Start.Equal(wantStart) || !window.End.Equal(ref) {
			t.Errorf("got [%v, %v], want [%v, %v]", window.Start, window.End, wantStart, ref)
		}
	})

	t.Run("explicit month and year override ref", func(t *testing.T) {
		window := WindowFor(GranularityMonth, ref, WindowParts{Month: time.January, Year: 2025})
		wantStart := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
		if !window.Start.Equal(wantStart) {
			t.Errorf("got start %v, want %v", window.Start, wantStart)
		}
	})

	t.Run("month override needs both parts", func(t *testing.T) {
		window := WindowFor(GranularityMonth, ref, WindowParts{Month: time.January})
		wantStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
		if !window.Start.Equal(wantStart) {
			t.Errorf("got start %v, want %v", window.Start, wantStart)
		}
	})

	t.Run("year starts january first", func(t *testing.T) {
		window := WindowFor(GranularityYear, ref, WindowParts{})
		wantStart := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
		if !window.Start.Equal(wantStart) || !window.End.Equal(ref) {
			t.Errorf("got [%v, %v], want [%v, %v]", window.Start, window.End, wantStart, ref)
		}
	})

	t.Run("explicit year override", func(t *testing.T) {
		window := WindowFor(GranularityYear, ref, WindowParts{Year: 2024})
		wantStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		if !window.Start.Equal(wantStart) {
			t.Errorf("got start %v, want %v", window.Start, wantStart)
		}
	})

	t.Run("all means no window", func(t *testing.T) {
		if window := WindowFor(GranularityAll, ref, WindowParts{}); window != nil {
			t.Errorf("got %+v, want nil", window)
		}
	})
}

func TestWindowContainsBoundaries(t *testing.T) {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC)
	window := &Window{Start: start, End: end}

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"exactly at start", start, true},
		{"exactly at end", end, true},
		{"inside", start.AddDate(0, 0, 15), true},
		{"just before start", start.Add(-time.Nanosecond), false},
		{"just after end", end.Add(time.Nanosecond), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := window.Contains(tt.t); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}

	var unbounded *Window
	if !unbounded.Contains(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("nil window must contain everything")
	}
}
