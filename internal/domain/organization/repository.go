package organization

import (
	"context"
)

// OrganizationRepository exposes the read-only slice of the organization
// directory this core depends on: the time policy and membership lookups.
type OrganizationRepository interface {
	// GetTimePolicy retrieves the decoded time policy for an organization
	GetTimePolicy(ctx context.Context, organizationID string) (TimePolicy, error)

	// GetMember retrieves the membership row, including the role used for
	// attendance visibility and the member's lunch slot
	GetMember(ctx context.Context, userID string, organizationID string) (Member, error)
}
