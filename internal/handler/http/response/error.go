package response

import (
	"errors"
	"net/http"

	"github.com/shiftclock/attendance-backend-go/internal/domain/attendance"
	"github.com/shiftclock/attendance-backend-go/internal/domain/organization"
	"github.com/shiftclock/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Every rejection carries
// a distinguishing code: state errors tell the client which action would be
// valid next, window errors whether to wait or file a manual correction.
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Organization errors
	case errors.Is(err, organization.ErrNotMember):
		Error(w, http.StatusUnauthorized, "NOT_A_MEMBER", "You are not a member of this organization")
	case errors.Is(err, organization.ErrInsufficientRole):
		Error(w, http.StatusForbidden, "FORBIDDEN", "Your role does not permit viewing other members' attendance")
	case errors.Is(err, organization.ErrOrganizationNotFound):
		Error(w, http.StatusNotFound, "ORGANIZATION_NOT_FOUND", "Organization not found")
	case errors.Is(err, organization.ErrPolicyNotConfigured):
		Error(w, http.StatusBadRequest, "POLICY_NOT_CONFIGURED", "Organization time policy is not configured, contact an administrator")

	// Clock-in errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Error(w, http.StatusConflict, "ALREADY_CLOCKED_IN", "You have already clocked in today")

	// Lunch-start errors
	case errors.Is(err, attendance.ErrLunchStartNoRecord):
		Error(w, http.StatusConflict, "CLOCK_LS_NO_RECORD", "No attendance record for today, clock in first")
	case errors.Is(err, attendance.ErrLunchStartNotClockedIn):
		Error(w, http.StatusConflict, "CLOCK_LS_NOT_CLOCKED_IN", "You must be clocked in to start a lunch break")
	case errors.Is(err, attendance.ErrLunchStartNotSet):
		Error(w, http.StatusBadRequest, "CLOCK_LS_NOT_SET", "No lunch time configured, contact an administrator")
	case errors.Is(err, attendance.ErrLunchStartOutOfTime):
		Error(w, http.StatusBadRequest, "CLOCK_LS_OUT_OF_TIME", "Outside the allowed lunch start window")
	case errors.Is(err, attendance.ErrLunchStartFailed):
		Error(w, http.StatusInternalServerError, "CLOCK_LS_ERROR", "Failed to start lunch break")

	// Lunch-return errors
	case errors.Is(err, attendance.ErrLunchReturnBeforeTime):
		Error(w, http.StatusBadRequest, "CLOCK_LR_BEFORE_TIME", "Too early to end the lunch break")
	case errors.Is(err, attendance.ErrLunchReturnAfterTime):
		Error(w, http.StatusBadRequest, "CLOCK_LR_AFTER_TIME", "Lunch break return is past the allowed window")
	case errors.Is(err, attendance.ErrLunchReturnFailed):
		Error(w, http.StatusConflict, "CLOCK_LR_ERROR", "No open lunch break to end")

	// Clock-out errors
	case errors.Is(err, attendance.ErrNoRecord):
		Error(w, http.StatusConflict, "NO_RECORD", "No attendance record for today")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Error(w, http.StatusConflict, "ALREADY_CLOCKED_OUT", "You have already clocked out today")
	case errors.Is(err, attendance.ErrLunchBreakOpen):
		Error(w, http.StatusConflict, "LUNCH_BREAK_OPEN", "End your lunch break before clocking out")

	// General errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		Error(w, http.StatusNotFound, "NOT_FOUND", "Attendance record not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
