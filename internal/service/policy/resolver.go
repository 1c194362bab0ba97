package policy

import (
	"time"

	"github.com/shiftclock/attendance-backend-go/internal/domain/attendance"
	"github.com/shiftclock/attendance-backend-go/internal/domain/organization"
	"github.com/shiftclock/attendance-backend-go/internal/pkg/clock"
)

// All windows are resolved against the organization-local calendar day of
// "now". Comparisons happen on instants, so callers may pass now in any
// location.

// ClockInWindow is the one-sided lateness threshold for clocking in.
type ClockInWindow struct {
	LateThreshold time.Time // scheduled open + grace period
}

func ResolveClockInWindow(p organization.TimePolicy, now time.Time) ClockInWindow {
	loc := p.Location()
	open := p.OpenTime.At(now, loc)
	return ClockInWindow{
		LateThreshold: open.Add(time.Duration(p.GracePeriodMinutes) * time.Minute),
	}
}

// IsLate reports whether a clock-in at now counts as late. Exactly at the
// threshold is not late.
func (w ClockInWindow) IsLate(now time.Time) bool {
	return now.After(w.LateThreshold)
}

// LunchStartWindow describes when a lunch break may begin:
// a soft grace window around the scheduled slot and a hard ceiling at
// slot + lunch limit beyond which no grace applies.
type LunchStartWindow struct {
	Scheduled   time.Time
	MinAllowed  time.Time // scheduled − grace
	MaxAllowed  time.Time // scheduled + grace
	HardCeiling time.Time // scheduled + lunch limit
}

func ResolveLunchStartWindow(p organization.TimePolicy, lunchTime clock.TimeOfDay, now time.Time) LunchStartWindow {
	loc := p.Location()
	scheduled := lunchTime.At(now, loc)
	grace := time.Duration(p.GracePeriodMinutes) * time.Minute
	return LunchStartWindow{
		Scheduled:   scheduled,
		MinAllowed:  scheduled.Add(-grace),
		MaxAllowed:  scheduled.Add(grace),
		HardCeiling: scheduled.Add(time.Duration(p.LunchLimitMinutes) * time.Minute),
	}
}

// Evaluate decides whether a lunch break may start at now. The returned bool
// marks a late start (past the soft window but under the hard ceiling).
// Strict organizations reject the whole in-grace window: anything but the
// exact scheduled second is a deviation.
func (w LunchStartWindow) Evaluate(p organization.TimePolicy, now time.Time) (bool, error) {
	if now.Before(w.MinAllowed) || now.After(w.HardCeiling) {
		return false, attendance.ErrLunchStartOutOfTime
	}
	if !now.After(w.MaxAllowed) {
		if p.StrictLunch && !now.Equal(w.Scheduled) {
			return false, attendance.ErrLunchStartOutOfTime
		}
		return false, nil
	}
	// Past the soft window but under the hard ceiling: accepted as a late
	// start rather than rejected.
	return true, nil
}

// LunchReturnWindow mirrors LunchStartWindow relative to the expected return
// instant, lunch start + lunch limit.
type LunchReturnWindow struct {
	Expected   time.Time // lunch start + lunch limit
	MinAllowed time.Time // expected − grace
	MaxAllowed time.Time // expected + grace
}

func ResolveLunchReturnWindow(p organization.TimePolicy, lunchStartedAt time.Time, now time.Time) LunchReturnWindow {
	expected := lunchStartedAt.Add(time.Duration(p.LunchLimitMinutes) * time.Minute)
	grace := time.Duration(p.GracePeriodMinutes) * time.Minute
	return LunchReturnWindow{
		Expected:   expected,
		MinAllowed: expected.Add(-grace),
		MaxAllowed: expected.Add(grace),
	}
}

// Evaluate decides whether the lunch break may end at now, distinguishing
// too-early from too-late so callers can offer the right remediation.
func (w LunchReturnWindow) Evaluate(p organization.TimePolicy, now time.Time) error {
	if now.Before(w.MinAllowed) {
		return attendance.ErrLunchReturnBeforeTime
	}
	if now.After(w.MaxAllowed) {
		return attendance.ErrLunchReturnAfterTime
	}
	if p.StrictLunch && !now.Equal(w.Expected) {
		if now.Before(w.Expected) {
			return attendance.ErrLunchReturnBeforeTime
		}
		return attendance.ErrLunchReturnAfterTime
	}
	return nil
}

// ClockOutWindow is the one-sided early-leave threshold for clocking out.
type ClockOutWindow struct {
	EarlyThreshold time.Time // scheduled close − early-leave minimum
}

func ResolveClockOutWindow(p organization.TimePolicy, now time.Time) ClockOutWindow {
	loc := p.Location()
	cl := p.CloseTime.At(now, loc)
	return ClockOutWindow{
		EarlyThreshold: cl.Add(-time.Duration(p.EarlyLeaveMinMinutes) * time.Minute),
	}
}

// IsEarly reports whether a clock-out at now counts as leaving early.
func (w ClockOutWindow) IsEarly(now time.Time) bool {
	return now.Before(w.EarlyThreshold)
}
