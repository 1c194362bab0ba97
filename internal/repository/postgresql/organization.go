package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftclock/attendance-backend-go/internal/domain/organization"
	"github.com/shiftclock/attendance-backend-go/internal/pkg/clock"
	"github.com/shiftclock/attendance-backend-go/internal/pkg/database"
)

type organizationRepository struct {
	db *database.DB
}

func NewOrganizationRepository(db *database.DB) organization.OrganizationRepository {
	return &organizationRepository{db: db}
}

// GetTimePolicy implements organization.OrganizationRepository.
// The stringly-typed time columns are decoded into clock.TimeOfDay here,
// once, so the rest of the core works with typed values.
func (o *organizationRepository) GetTimePolicy(ctx context.Context, organizationID string) (organization.TimePolicy, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT id, open_time::text, close_time::text, timezone,
			   grace_period_minutes, lunch_mode, lunch_start::text,
			   lunch_limit_minutes, strict_lunch, early_leave_min_minutes
		FROM organizations
		WHERE id = $1
	`

	var (
		policy     organization.TimePolicy
		openTime   string
		closeTime  string
		lunchStart *string
	)
	err := q.QueryRow(ctx, query, organizationID).Scan(
		&policy.OrganizationID, &openTime, &closeTime, &policy.Timezone,
		&policy.GracePeriodMinutes, &policy.LunchMode, &lunchStart,
		&policy.LunchLimitMinutes, &policy.StrictLunch, &policy.EarlyLeaveMinMinutes,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return organization.TimePolicy{}, organization.ErrOrganizationNotFound
		}
		return organization.TimePolicy{}, fmt.Errorf("failed to get time policy: %w", err)
	}

	if policy.OpenTime, err = clock.ParseTimeOfDay(openTime); err != nil {
		return organization.TimePolicy{}, fmt.Errorf("%w: bad open_time: %v", organization.ErrPolicyNotConfigured, err)
	}
	if policy.CloseTime, err = clock.ParseTimeOfDay(closeTime); err != nil {
		return organization.TimePolicy{}, fmt.Errorf("%w: bad close_time: %v", organization.ErrPolicyNotConfigured, err)
	}
	if lunchStart != nil {
		start, err := clock.ParseTimeOfDay(*lunchStart)
		if err != nil {
			return organization.TimePolicy{}, fmt.Errorf("%w: bad lunch_start: %v", organization.ErrPolicyNotConfigured, err)
		}
		policy.LunchStart = &start
	}

	return policy, nil
}

// GetMember implements organization.OrganizationRepository.
func (o *organizationRepository) GetMember(ctx context.Context, userID string, organizationID string) (organization.Member, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT user_id, organization_id, role, lunch_time::text, created_at, updated_at
		FROM organization_members
		WHERE user_id = $1 AND organization_id = $2
	`

	var (
		member    organization.Member
		lunchTime *string
	)
	err := q.QueryRow(ctx, query, userID, organizationID).Scan(
		&member.UserID, &member.OrganizationID, &member.Role, &lunchTime,
		&member.CreatedAt, &member.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return organization.Member{}, organization.ErrNotMember
		}
		return organization.Member{}, fmt.Errorf("failed to get organization member: %w", err)
	}

	if lunchTime != nil {
		t, err := clock.ParseTimeOfDay(*lunchTime)
		if err != nil {
			return organization.Member{}, fmt.Errorf("invalid member lunch_time: %w", err)
		}
		member.LunchTime = &t
	}

	return member, nil
}
