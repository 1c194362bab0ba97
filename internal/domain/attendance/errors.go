package attendance

import "errors"

// Attendance domain errors
var (
	// Clock-in errors
	ErrAlreadyClockedIn = errors.New("you have already clocked in today")

	// Lunch-start errors
	ErrLunchStartNoRecord     = errors.New("no attendance record for today, clock in first")
	ErrLunchStartNotClockedIn = errors.New("you must be clocked in to start a lunch break")
	ErrLunchStartNotSet       = errors.New("no lunch time configured, contact an administrator")
	ErrLunchStartOutOfTime    = errors.New("outside the allowed lunch start window")
	ErrLunchStartFailed       = errors.New("failed to start lunch break")

	// Lunch-return errors
	ErrLunchReturnBeforeTime = errors.New("too early to end the lunch break")
	ErrLunchReturnAfterTime  = errors.New("lunch break return is past the allowed window")
	ErrLunchReturnFailed     = errors.New("failed to end lunch break")

	// Clock-out errors
	ErrNoRecord          = errors.New("no attendance record for today")
	ErrAlreadyClockedOut = errors.New("you have already clocked out today")
	ErrLunchBreakOpen    = errors.New("cannot clock out during an open lunch break")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
