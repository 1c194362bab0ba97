// Package memory holds in-memory repository implementations backing the
// service tests. They honor the same contracts as the PostgreSQL versions,
// including the one-record-per-day guarantee under concurrent creates.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shiftclock/attendance-backend-go/internal/domain/attendance"
)

type AttendanceRepository struct {
	mu      sync.Mutex
	records map[string]attendance.Attendance // by record ID
	byDay   map[string]string                // user|org|date -> record ID
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{
		records: make(map[string]attendance.Attendance),
		byDay:   make(map[string]string),
	}
}

func dayKey(userID, organizationID string, date time.Time) string {
	return userID + "|" + organizationID + "|" + date.Format("2006-01-02")
}

func cloneRecord(record attendance.Attendance) attendance.Attendance {
	record.Operations = append([]attendance.Operation(nil), record.Operations...)
	return record
}

// Create implements attendance.AttendanceRepository.
func (r *AttendanceRepository) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dayKey(record.UserID, record.OrganizationID, record.Date)
	if _, exists := r.byDay[key]; exists {
		return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
	}

	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	r.records[record.ID] = cloneRecord(record)
	r.byDay[key] = record.ID
	return record, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *AttendanceRepository) GetByUserAndDate(ctx context.Context, userID string, organizationID string, date time.Time) (*attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, exists := r.byDay[dayKey(userID, organizationID, date)]
	if !exists {
		return nil, nil
	}
	record := cloneRecord(r.records[id])
	return &record, nil
}

// Update implements attendance.AttendanceRepository.
func (r *AttendanceRepository) Update(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.records[record.ID]
	if !exists || stored.OrganizationID != record.OrganizationID {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}

	record.CreatedAt = stored.CreatedAt
	record.UpdatedAt = time.Now()
	r.records[record.ID] = cloneRecord(record)
	return record, nil
}

// List implements attendance.AttendanceRepository.
func (r *AttendanceRepository) List(ctx context.Context, organizationID string, filter attendance.ListFilter) ([]attendance.Attendance, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []attendance.Attendance
	for _, record := range r.records {
		if record.OrganizationID != organizationID {
			continue
		}
		if filter.UserID != nil && *filter.UserID != "" && record.UserID != *filter.UserID {
			continue
		}
		day := record.Date.Format("2006-01-02")
		if filter.StartDate != nil && *filter.StartDate != "" && day < *filter.StartDate {
			continue
		}
		if filter.EndDate != nil && *filter.EndDate != "" && day > *filter.EndDate {
			continue
		}
		if filter.Status != nil && *filter.Status != "" && string(record.Status) != *filter.Status {
			continue
		}
		matched = append(matched, cloneRecord(record))
	}

	asc := strings.ToLower(filter.SortOrder) == "asc"
	sort.Slice(matched, func(i, j int) bool {
		less := matched[i].Date.Before(matched[j].Date)
		if matched[i].Date.Equal(matched[j].Date) {
			less = matched[i].ID < matched[j].ID
		}
		if asc {
			return less
		}
		return !less
	})

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}
