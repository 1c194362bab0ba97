package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftclock/attendance-backend-go/internal/domain/attendance"
	"github.com/shiftclock/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, user_id, organization_id, role, date,
	clock_in, lunch_break_out, lunch_break_return, clock_out,
	status, total_work_seconds, total_break_seconds,
	was_late, early_out, times_updated, operations,
	created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var record attendance.Attendance
	var operations []byte
	err := row.Scan(
		&record.ID, &record.UserID, &record.OrganizationID, &record.Role, &record.Date,
		&record.ClockIn, &record.LunchBreakOut, &record.LunchBreakReturn, &record.ClockOut,
		&record.Status, &record.TotalWorkSeconds, &record.TotalBreakSeconds,
		&record.WasLate, &record.EarlyOut, &record.TimesUpdated, &operations,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if len(operations) > 0 {
		if err := json.Unmarshal(operations, &record.Operations); err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to decode operation log: %w", err)
		}
	}
	return record, nil
}

// Create implements attendance.AttendanceRepository.
// The unique index on (user_id, organization_id, date) makes concurrent
// create-if-absent safe: the loser of the race inserts no row and gets
// ErrAlreadyClockedIn.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	operations, err := json.Marshal(record.Operations)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to encode operation log: %w", err)
	}

	query := `
		INSERT INTO attendances (
			id, user_id, organization_id, role, date,
			clock_in, status, total_work_seconds, total_break_seconds,
			was_late, early_out, times_updated, operations
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		ON CONFLICT (user_id, organization_id, date) DO NOTHING
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		record.ID,
		record.UserID,
		record.OrganizationID,
		record.Role,
		record.Date,
		record.ClockIn,
		record.Status,
		record.TotalWorkSeconds,
		record.TotalBreakSeconds,
		record.WasLate,
		record.EarlyOut,
		record.TimesUpdated,
		operations,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return record, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, organizationID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE user_id = $1
		  AND organization_id = $2
		  AND date = $3
		LIMIT 1
	`

	record, err := scanAttendance(q.QueryRow(ctx, query, userID, organizationID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No record for this day yet
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return &record, nil
}

// Update implements attendance.AttendanceRepository.
// Only the fields the state machine mutates are written; the identity
// columns and clock_in stay untouched after creation.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	operations, err := json.Marshal(record.Operations)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to encode operation log: %w", err)
	}

	query := `
		UPDATE attendances SET
			lunch_break_out = $1,
			lunch_break_return = $2,
			clock_out = $3,
			status = $4,
			total_work_seconds = $5,
			total_break_seconds = $6,
			early_out = $7,
			times_updated = $8,
			operations = $9,
			updated_at = NOW()
		WHERE id = $10 AND organization_id = $11
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		record.LunchBreakOut,
		record.LunchBreakReturn,
		record.ClockOut,
		record.Status,
		record.TotalWorkSeconds,
		record.TotalBreakSeconds,
		record.EarlyOut,
		record.TimesUpdated,
		operations,
		record.ID,
		record.OrganizationID,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return record, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, organizationID string, filter attendance.ListFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	baseWhere := "organization_id = $1"
	args := []interface{}{organizationID}
	argIdx := 2

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}

	// Date range is inclusive on both ends
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	// Count total
	countQuery := "SELECT COUNT(*) FROM attendances WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	// Build ORDER BY
	orderByField := "date"
	switch filter.SortBy {
	case "clock_in":
		orderByField = "clock_in"
	case "clock_out":
		orderByField = "clock_out"
	case "status":
		orderByField = "status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+attendanceColumns+`
		FROM attendances
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, record)
	}

	return records, total, nil
}
