package attendance

import (
	"context"
)

// AttendanceService is the daily attendance state machine plus its read side.
// The acting user and organization come from the session claims in ctx.
type AttendanceService interface {
	// ClockIn creates today's record and moves it to CLOCKED_IN
	ClockIn(ctx context.Context, req ClockRequest) (AttendanceResponse, error)

	// LunchStart moves today's record to LUNCH_BREAK_STARTED when the
	// policy window allows it
	LunchStart(ctx context.Context, req ClockRequest) (AttendanceResponse, error)

	// LunchReturn moves today's record to LUNCH_BREAK_ENDED and accumulates
	// the break duration
	LunchReturn(ctx context.Context, req ClockRequest) (AttendanceResponse, error)

	// ClockOut finalizes today's record with the worked duration
	ClockOut(ctx context.Context, req ClockRequest) (AttendanceResponse, error)

	// GetToday returns today's record for the caller, or a TBR placeholder
	// when none exists yet
	GetToday(ctx context.Context) (AttendanceResponse, error)

	// GetMyAttendance lists the caller's own records
	GetMyAttendance(ctx context.Context, filter ListFilter) (ListAttendanceResponse, error)

	// ListAttendance lists records organization-wide for privileged roles;
	// other members only see their own rows
	ListAttendance(ctx context.Context, filter ListFilter) (ListAttendanceResponse, error)
}
