package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
// All methods include organizationID to prevent cross-tenant data access.
type AttendanceRepository interface {
	// Create inserts a new daily record. Implementations must guarantee at
	// most one record per (userID, organizationID, date) under concurrent
	// calls; the loser of a create race gets ErrAlreadyClockedIn.
	Create(ctx context.Context, record Attendance) (Attendance, error)

	// GetByUserAndDate retrieves the record for an organization-local
	// calendar day. Returns (nil, nil) when no record exists.
	GetByUserAndDate(ctx context.Context, userID string, organizationID string, date time.Time) (*Attendance, error)

	// Update persists the mutable fields of an existing record
	Update(ctx context.Context, record Attendance) (Attendance, error)

	// List retrieves records with filters and pagination
	List(ctx context.Context, organizationID string, filter ListFilter) ([]Attendance, int64, error)
}
