// Package timeutil resolves club time zones and calendar-day keys.
package timeutil

import (
	"fmt"
	"sync"
	"time"
)

// DateLayout is the calendar-day key format.
const DateLayout = "2006-01-02"

// locations memoizes loaded zones for the life of the process.
var locations sync.Map

// LoadLocation returns the named zone, loading it at most once.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	if loc, ok := locations.Load(name); ok {
		return loc.(*time.Location), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load location %q: %w", name, err)
	}
	actual, _ := locations.LoadOrStore(name, loc)
	return actual.(*time.Location), nil
}

// MustLocation is LoadLocation falling back to UTC.
func MustLocation(name string) *time.Location {
	loc, err := LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DayKey formats t as a calendar day in loc. A nil loc means UTC.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// ParseDay parses a YYYY-MM-DD key as midnight in loc.
func ParseDay(day string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, day, loc)
}

// LocalHour returns the hour of t in loc.
func LocalHour(t time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Hour()
}
