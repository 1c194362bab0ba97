package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftclock/attendance-backend-go/internal/domain/attendance"
)

func testRecord(id, userID string, date time.Time) attendance.Attendance {
	clockIn := date.Add(9 * time.Hour)
	return attendance.Attendance{
		ID:             id,
		UserID:         userID,
		OrganizationID: "org-1",
		Date:           date,
		ClockIn:        &clockIn,
		Status:         attendance.StatusClockedIn,
		Operations:     []attendance.Operation{{ID: "op-1", Type: attendance.OperationWebApp, CreatedAt: clockIn}},
	}
}

func TestCreate_UniquePerDay(t *testing.T) {
	repo := NewAttendanceRepository()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := repo.Create(context.Background(), testRecord("rec-1", "user-1", day))
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), testRecord("rec-2", "user-1", day))
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	// Same user on a different day, and a different user on the same day,
	// are both fine.
	_, err = repo.Create(context.Background(), testRecord("rec-3", "user-1", day.AddDate(0, 0, 1)))
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), testRecord("rec-4", "user-2", day))
	require.NoError(t, err)
}

func TestCreate_ConcurrentSingleWinner(t *testing.T) {
	repo := NewAttendanceRepository()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	const attempts = 32
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(context.Background(), testRecord(fmt.Sprintf("rec-%d", i), "user-1", day))
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
		}
	}
	assert.Equal(t, 1, successes)

	_, total, err := repo.List(context.Background(), "org-1", attendance.ListFilter{Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestUpdate_UnknownRecord(t *testing.T) {
	repo := NewAttendanceRepository()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := repo.Update(context.Background(), testRecord("missing", "user-1", day))
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestGetByUserAndDate_ReturnsCopy(t *testing.T) {
	repo := NewAttendanceRepository()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := repo.Create(context.Background(), testRecord("rec-1", "user-1", day))
	require.NoError(t, err)

	got, err := repo.GetByUserAndDate(context.Background(), "user-1", "org-1", day)
	require.NoError(t, err)
	require.NotNil(t, got)

	// Mutating the returned record must not leak back into the store.
	got.Operations[0].Type = attendance.OperationQR
	again, err := repo.GetByUserAndDate(context.Background(), "user-1", "org-1", day)
	require.NoError(t, err)
	assert.Equal(t, attendance.OperationWebApp, again.Operations[0].Type)

	missing, err := repo.GetByUserAndDate(context.Background(), "user-9", "org-1", day)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestList_PaginationAndOrder(t *testing.T) {
	repo := NewAttendanceRepository()
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := repo.Create(context.Background(), testRecord(fmt.Sprintf("rec-%d", i), "user-1", base.AddDate(0, 0, i)))
		require.NoError(t, err)
	}

	records, total, err := repo.List(context.Background(), "org-1", attendance.ListFilter{Limit: 2, SortOrder: "desc"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-03-14", records[0].Date.Format("2006-01-02"))

	records, _, err = repo.List(context.Background(), "org-1", attendance.ListFilter{Limit: 2, Offset: 4, SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2025-03-14", records[0].Date.Format("2006-01-02"))

	records, total, err = repo.List(context.Background(), "org-1", attendance.ListFilter{Limit: 10, Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Empty(t, records)
}
