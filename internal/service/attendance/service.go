package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shiftclock/attendance-backend-go/internal/domain/attendance"
	"github.com/shiftclock/attendance-backend-go/internal/domain/organization"
	"github.com/shiftclock/attendance-backend-go/internal/pkg/clock"
	"github.com/shiftclock/attendance-backend-go/internal/service/policy"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	organization.OrganizationRepository
	clock clock.Clock
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	organizationRepo organization.OrganizationRepository,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository:   attendanceRepo,
		OrganizationRepository: organizationRepo,
		clock:                  clk,
	}
}

// identityFromContext extracts the authenticated user and their active
// organization from the session claims.
func identityFromContext(ctx context.Context) (userID string, organizationID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	organizationID, ok = claims["organization_id"].(string)
	if !ok || organizationID == "" {
		return "", "", fmt.Errorf("organization_id claim is missing or invalid")
	}

	return userID, organizationID, nil
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

func newOperation(source string, at time.Time) attendance.Operation {
	return attendance.Operation{
		ID:        uuid.NewString(),
		Type:      attendance.OperationType(source),
		CreatedAt: at,
	}
}

// today loads the organization's policy and resolves the current instant and
// the organization-local calendar day every transition operates on.
func (a *AttendanceServiceImpl) today(ctx context.Context, organizationID string) (organization.TimePolicy, time.Time, time.Time, error) {
	pol, err := a.OrganizationRepository.GetTimePolicy(ctx, organizationID)
	if err != nil {
		if errors.Is(err, organization.ErrPolicyNotConfigured) || errors.Is(err, organization.ErrOrganizationNotFound) {
			return organization.TimePolicy{}, time.Time{}, time.Time{}, err
		}
		return organization.TimePolicy{}, time.Time{}, time.Time{}, fmt.Errorf("failed to get time policy: %w", err)
	}

	now := a.clock.Now().UTC()
	day := clock.DayStart(now, pol.Location())
	return pol, now, day, nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	userID, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	member, err := a.OrganizationRepository.GetMember(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, organization.ErrNotMember) {
			return attendance.AttendanceResponse{}, organization.ErrNotMember
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get member: %w", err)
	}

	pol, now, day, err := a.today(ctx, organizationID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, organizationID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing != nil && existing.ClockIn != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
	}

	window := policy.ResolveClockInWindow(pol, now)

	record := attendance.Attendance{
		ID:             uuid.NewString(),
		UserID:         userID,
		OrganizationID: organizationID,
		Role:           string(member.Role),
		Date:           day,
		ClockIn:        &now,
		Status:         attendance.StatusClockedIn,
		WasLate:        window.IsLate(now),
		Operations:     []attendance.Operation{newOperation(req.Source, now)},
	}

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		// A duplicate request may have lost the create race; the unique
		// (user, organization, date) constraint surfaces as this sentinel.
		if errors.Is(err, attendance.ErrAlreadyClockedIn) {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return mapAttendanceToResponse(created), nil
}

// LunchStart implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) LunchStart(ctx context.Context, req attendance.ClockRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	userID, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	member, err := a.OrganizationRepository.GetMember(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, organization.ErrNotMember) {
			return attendance.AttendanceResponse{}, organization.ErrNotMember
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get member: %w", err)
	}

	pol, now, day, err := a.today(ctx, organizationID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, organizationID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return attendance.AttendanceResponse{}, attendance.ErrLunchStartNoRecord
	}
	if record.Status != attendance.StatusClockedIn {
		return attendance.AttendanceResponse{}, attendance.ErrLunchStartNotClockedIn
	}

	lunchTime := organization.LunchTimeFor(member, pol)
	if lunchTime == nil {
		return attendance.AttendanceResponse{}, attendance.ErrLunchStartNotSet
	}

	window := policy.ResolveLunchStartWindow(pol, *lunchTime, now)
	if _, err := window.Evaluate(pol, now); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record.LunchBreakOut = &now
	record.Status = attendance.StatusLunchBreakStarted
	record.TimesUpdated++
	record.Operations = append(record.Operations, newOperation(req.Source, now))

	updated, err := a.AttendanceRepository.Update(ctx, *record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("%w: %v", attendance.ErrLunchStartFailed, err)
	}

	return mapAttendanceToResponse(updated), nil
}

// LunchReturn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) LunchReturn(ctx context.Context, req attendance.ClockRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	userID, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	pol, now, day, err := a.today(ctx, organizationID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, organizationID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil || record.Status != attendance.StatusLunchBreakStarted || record.LunchBreakOut == nil {
		return attendance.AttendanceResponse{}, attendance.ErrLunchReturnFailed
	}

	window := policy.ResolveLunchReturnWindow(pol, *record.LunchBreakOut, now)
	if err := window.Evaluate(pol, now); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record.LunchBreakReturn = &now
	record.TotalBreakSeconds += clock.SaturatingSeconds(now, *record.LunchBreakOut)
	record.Status = attendance.StatusLunchBreakEnded
	record.TimesUpdated++
	record.Operations = append(record.Operations, newOperation(req.Source, now))

	updated, err := a.AttendanceRepository.Update(ctx, *record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("%w: %v", attendance.ErrLunchReturnFailed, err)
	}

	return mapAttendanceToResponse(updated), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	userID, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	pol, now, day, err := a.today(ctx, organizationID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, organizationID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil || record.ClockIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoRecord
	}

	switch record.Status {
	case attendance.StatusClockedOut:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedOut
	case attendance.StatusLunchBreakStarted:
		return attendance.AttendanceResponse{}, attendance.ErrLunchBreakOpen
	case attendance.StatusClockedIn, attendance.StatusLunchBreakEnded:
		// valid
	default:
		return attendance.AttendanceResponse{}, attendance.ErrNoRecord
	}

	window := policy.ResolveClockOutWindow(pol, now)

	work := clock.SaturatingSeconds(now, *record.ClockIn) - record.TotalBreakSeconds
	if work < 0 {
		work = 0
	}

	record.ClockOut = &now
	record.TotalWorkSeconds = work
	record.EarlyOut = window.IsEarly(now)
	record.Status = attendance.StatusClockedOut
	record.TimesUpdated++
	record.Operations = append(record.Operations, newOperation(req.Source, now))

	updated, err := a.AttendanceRepository.Update(ctx, *record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return mapAttendanceToResponse(updated), nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context) (attendance.AttendanceResponse, error) {
	userID, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	_, _, day, err := a.today(ctx, organizationID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, organizationID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		// No record yet: the day is still to be reported.
		return attendance.AttendanceResponse{
			UserID:         userID,
			OrganizationID: organizationID,
			Date:           day.Format("2006-01-02"),
			Status:         string(attendance.StatusTBR),
		}, nil
	}

	return mapAttendanceToResponse(*record), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.ListFilter) (attendance.ListAttendanceResponse, error) {
	userID, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	filter.UserID = &userID

	records, total, err := a.AttendanceRepository.List(ctx, organizationID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to get my attendance: %w", err)
	}

	return buildListResponse(records, total, filter), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.ListFilter) (attendance.ListAttendanceResponse, error) {
	userID, organizationID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	member, err := a.OrganizationRepository.GetMember(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, organization.ErrNotMember) {
			return attendance.ListAttendanceResponse{}, organization.ErrNotMember
		}
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to get member: %w", err)
	}

	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if !member.Role.CanViewAllAttendance() {
		if filter.UserID != nil && *filter.UserID != userID {
			return attendance.ListAttendanceResponse{}, organization.ErrInsufficientRole
		}
		filter.UserID = &userID
	}

	records, total, err := a.AttendanceRepository.List(ctx, organizationID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	return buildListResponse(records, total, filter), nil
}

func buildListResponse(records []attendance.Attendance, total int64, filter attendance.ListFilter) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapAttendanceToResponse(record))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
		Attendances: responses,
	}
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse
func mapAttendanceToResponse(record attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                record.ID,
		UserID:            record.UserID,
		OrganizationID:    record.OrganizationID,
		Role:              record.Role,
		Date:              record.Date.Format("2006-01-02"),
		ClockIn:           timePtrToString(record.ClockIn),
		LunchBreakOut:     timePtrToString(record.LunchBreakOut),
		LunchBreakReturn:  timePtrToString(record.LunchBreakReturn),
		ClockOut:          timePtrToString(record.ClockOut),
		Status:            string(record.Status),
		TotalWorkSeconds:  record.TotalWorkSeconds,
		TotalBreakSeconds: record.TotalBreakSeconds,
		WasLate:           record.WasLate,
		EarlyOut:          record.EarlyOut,
		TimesUpdated:      record.TimesUpdated,
		Operations:        record.Operations,
		CreatedAt:         record.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         record.UpdatedAt.Format(time.RFC3339),
	}
}
