package clock

import (
	"fmt"
	"time"
)

// TimeOfDay is a clock time expressed as seconds since midnight.
type TimeOfDay int

// ParseTimeOfDay parses a "HH:MM:SS" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
}

func (t TimeOfDay) String() string {
	secs := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
}

func (t TimeOfDay) AddMinutes(m int) TimeOfDay {
	return t + TimeOfDay(m*60)
}

// At composes the time of day with the calendar date of ref, interpreted in loc.
func (t TimeOfDay) At(ref time.Time, loc *time.Location) time.Time {
	local := ref.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, int(t), 0, loc)
}

// DayStart returns midnight of ref's calendar day in loc.
func DayStart(ref time.Time, loc *time.Location) time.Time {
	local := ref.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// SaturatingSeconds returns a−b in whole seconds, floored at zero.
// Clock skew must never produce a negative duration.
func SaturatingSeconds(a, b time.Time) int64 {
	secs := int64(a.Sub(b) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// DiffSeconds returns a−b between two times of day, floored at zero.
func DiffSeconds(a, b TimeOfDay) int {
	if a < b {
		return 0
	}
	return int(a - b)
}
