package organization

import "errors"

// Organization domain errors
var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrNotMember            = errors.New("user is not a member of this organization")
	ErrInsufficientRole     = errors.New("role does not permit viewing other members' attendance")
	ErrPolicyNotConfigured  = errors.New("organization time policy is not configured")
)
