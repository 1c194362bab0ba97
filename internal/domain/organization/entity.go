package organization

import (
	"time"

	"github.com/shiftclock/attendance-backend-go/internal/pkg/clock"
)

type Role string

const (
	RoleOwner   Role = "owner"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

var RoleValues = []string{
	string(RoleOwner),
	string(RoleAdmin),
	string(RoleManager),
	string(RoleMember),
}

// CanViewAllAttendance reports whether the role may read other members' records.
func (r Role) CanViewAllAttendance() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleManager:
		return true
	}
	return false
}

type LunchMode string

const (
	LunchModeFlexible LunchMode = "flexible" // each member brings their own lunch slot
	LunchModeFixed    LunchMode = "fixed"    // one organization-wide lunch start
)

// TimePolicy is the organization's work-hours configuration, decoded once at
// the repository boundary into typed fields.
type TimePolicy struct {
	OrganizationID       string
	OpenTime             clock.TimeOfDay
	CloseTime            clock.TimeOfDay
	Timezone             string
	GracePeriodMinutes   int
	LunchMode            LunchMode
	LunchStart           *clock.TimeOfDay // set when LunchMode is fixed
	LunchLimitMinutes    int
	StrictLunch          bool
	EarlyLeaveMinMinutes int
}

// Location resolves the configured IANA timezone, falling back to UTC when the
// name fails to load.
func (p TimePolicy) Location() *time.Location {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type Member struct {
	UserID         string
	OrganizationID string
	Role           Role
	LunchTime      *clock.TimeOfDay // personal lunch slot, nil when not configured
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LunchTimeFor resolves the lunch slot for a member under the given policy:
// the member's own slot wins, then the organization's fixed start. A nil
// result means no lunch time is configured for this member.
func LunchTimeFor(m Member, p TimePolicy) *clock.TimeOfDay {
	if m.LunchTime != nil {
		return m.LunchTime
	}
	if p.LunchMode == LunchModeFixed {
		return p.LunchStart
	}
	return nil
}
