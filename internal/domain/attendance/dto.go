package attendance

import (
	"time"

	"github.com/shiftclock/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// ClockRequest is the body shared by the four transition endpoints. Source
// identifies how the action was triggered; it goes into the operation log.
type ClockRequest struct {
	Source string `json:"source"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Source) {
		r.Source = string(OperationWebApp) // default source
	}

	if !validator.IsInSlice(r.Source, OperationTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "source",
			Message: "source must be one of: nfc, webapp, qr",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID                string      `json:"id"`
	UserID            string      `json:"user_id"`
	OrganizationID    string      `json:"organization_id"`
	Role              string      `json:"role,omitempty"`
	Date              string      `json:"date"`
	ClockIn           *string     `json:"clock_in,omitempty"`
	LunchBreakOut     *string     `json:"lunch_break_out,omitempty"`
	LunchBreakReturn  *string     `json:"lunch_break_return,omitempty"`
	ClockOut          *string     `json:"clock_out,omitempty"`
	Status            string      `json:"status"`
	TotalWorkSeconds  int64       `json:"total_work_seconds"`
	TotalBreakSeconds int64       `json:"total_break_seconds"`
	WasLate           bool        `json:"was_late"`
	EarlyOut          bool        `json:"early_out"`
	TimesUpdated      int         `json:"times_updated"`
	Operations        []Operation `json:"operations,omitempty"`
	CreatedAt         string      `json:"created_at,omitempty"`
	UpdatedAt         string      `json:"updated_at,omitempty"`
}

type ListFilter struct {
	// Search & Filter
	UserID    *string `json:"user_id,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD, inclusive
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD, inclusive
	Status    *string `json:"status,omitempty"`

	// Pagination
	Limit  int `json:"limit"`
	Offset int `json:"offset"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, clock_in, clock_out, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	// Limit validation
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	// Offset validation
	if f.Offset < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "offset",
			Message: "offset must not be negative",
		})
	}

	// Date range validation
	var start, end time.Time
	var startOK, endOK bool
	if f.StartDate != nil && *f.StartDate != "" {
		if start, startOK = validator.IsValidDate(*f.StartDate); !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if end, endOK = validator.IsValidDate(*f.EndDate); !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	// Status validation
	if f.Status != nil && *f.Status != "" && !validator.IsInSlice(*f.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "invalid status value",
		})
	}

	// Sorting validation
	if f.SortBy == "" {
		f.SortBy = "date" // Default sort
	}
	if !validator.IsInSlice(f.SortBy, []string{"date", "clock_in", "clock_out", "status"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_by",
			Message: "sort_by must be one of: date, clock_in, clock_out, status",
		})
	}
	if f.SortOrder == "" {
		f.SortOrder = "desc" // Default order
	}
	if !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_order",
			Message: "sort_order must be asc or desc",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
	Attendances []AttendanceResponse `json:"attendances"`
}
