package domain

import (
	"strings"
	"time"
)

// Granularity is the requested reporting period.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
	GranularityAll   Granularity = "all"
)

// ParseGranularity maps a raw filter string to a granularity. Anything
// outside the enumerated set behaves as day; dashboard usability is
// prioritized over strict validation.
func ParseGranularity(raw string) Granularity {
	switch Granularity(strings.ToLower(strings.TrimSpace(raw))) {
	case GranularityWeek:
		return GranularityWeek
	case GranularityMonth:
		return GranularityMonth
	case GranularityYear:
		return GranularityYear
	case GranularityAll:
		return GranularityAll
	default:
		return GranularityDay
	}
}

// Window is an inclusive [Start, End] instant range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window. A nil window means
// no filtering. Both bounds are inclusive: a record stamped exactly at End
// must count.
func (w *Window) Contains(t time.Time) bool {
	if w == nil {
		return true
	}
	return !t.Before(w.Start) && !t.After(w.End)
}

// WindowParts carries optional explicit date components from the query.
// Zero values mean "use the reference instant's components".
type WindowParts struct {
	Date  *time.Time // explicit day (day granularity)
	Month time.Month // explicit month 1-12 (month granularity)
	Year  int        // explicit year (month and year granularity)
}

// WindowFor computes the window for a granularity relative to ref. A nil
// result means no filtering (the "all" granularity). All arithmetic happens
// in ref's location.
func WindowFor(granularity Granularity, ref time.Time, parts WindowParts) *Window {
	loc := ref.Location()

	switch granularity {
	case GranularityAll:
		return nil

	case GranularityWeek:
		start := midnight(ref.AddDate(0, 0, -6))
		return &Window{Start: start, End: ref}

	case GranularityMonth:
		year, month := ref.Year(), ref.Month()
		if parts.Month >= time.January && parts.Month <= time.December && parts.Year > 0 {
			year, month = parts.Year, parts.Month
		}
		start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
		return &Window{Start: start, End: ref}

	case GranularityYear:
		year := ref.Year()
		if parts.Year > 0 {
			year = parts.Year
		}
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		return &Window{Start: start, End: ref}

	default: // day, including anything unrecognized
		if parts.Date != nil {
			start := midnight(parts.Date.In(loc))
			end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
			return &Window{Start: start, End: end}
		}
		return &Window{Start: midnight(ref), End: ref}
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
