package attendance

import (
	"time"
)

// Status is the daily attendance state. It only moves forward through the
// fixed order below; the lunch states may be skipped entirely.
type Status string

const (
	StatusTBR               Status = "TBR" // implicit: no record exists yet
	StatusClockedIn         Status = "CLOCKED_IN"
	StatusLunchBreakStarted Status = "LUNCH_BREAK_STARTED"
	StatusLunchBreakEnded   Status = "LUNCH_BREAK_ENDED"
	StatusClockedOut        Status = "CLOCKED_OUT"
)

var statusRank = map[Status]int{
	StatusTBR:               0,
	StatusClockedIn:         1,
	StatusLunchBreakStarted: 2,
	StatusLunchBreakEnded:   3,
	StatusClockedOut:        4,
}

// Rank returns the position of the status in the transition order.
func (s Status) Rank() int {
	return statusRank[s]
}

var StatusValues = []string{
	string(StatusTBR),
	string(StatusClockedIn),
	string(StatusLunchBreakStarted),
	string(StatusLunchBreakEnded),
	string(StatusClockedOut),
}

type OperationType string

const (
	OperationNFC    OperationType = "nfc"
	OperationWebApp OperationType = "webapp"
	OperationQR     OperationType = "qr"
)

var OperationTypeValues = []string{
	string(OperationNFC),
	string(OperationWebApp),
	string(OperationQR),
}

// Operation is one entry of the append-only audit log kept on each record.
// Entries are never mutated or removed.
type Operation struct {
	ID        string        `json:"id"`
	Type      OperationType `json:"type"`
	CreatedAt time.Time     `json:"created_at"`
}

// Attendance is the single daily record per (user, organization, org-local
// date). The four clock timestamps are each set at most once, in order.
type Attendance struct {
	ID                string
	UserID            string
	OrganizationID    string
	Role              string // role snapshot taken at clock-in, kept for audit
	Date              time.Time
	ClockIn           *time.Time
	LunchBreakOut     *time.Time
	LunchBreakReturn  *time.Time
	ClockOut          *time.Time
	Status            Status
	TotalWorkSeconds  int64
	TotalBreakSeconds int64
	WasLate           bool
	EarlyOut          bool
	TimesUpdated      int
	Operations        []Operation
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
